package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrService marks a response the planner produced but that cannot be used:
// a non-2xx status or an error payload.
var ErrService = errors.New("planner service error")

// Client talks to the delivery planner. It sets no timeout of its own; a
// hung request is bounded only by the transport and the caller's context.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

// NextPlan requests the fielder layout and ball type for the next delivery.
func (c *Client) NextPlan(ctx context.Context, req Request) (Plan, error) {
	var out planResponse
	if err := c.post(ctx, "/plan-next-delivery", req, &out); err != nil {
		return Plan{}, fmt.Errorf("planning delivery: %w", err)
	}
	if out.Error != "" {
		return Plan{}, fmt.Errorf("planning delivery: %w: %s", ErrService, out.Error)
	}
	return out.Plan, nil
}

// NewSession asks the service to open a session and returns its id.
func (c *Client) NewSession(ctx context.Context) (string, error) {
	var out sessionResponse
	if err := c.post(ctx, "/session", struct{}{}, &out); err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("opening session: %w: empty session id", ErrService)
	}
	return out.SessionID, nil
}

// post sends body with a fresh X-Request-ID. Transport and status errors
// carry the id so a failure can be matched to the service's log line.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	id := uuid.New().String()
	req.Header.Set("X-Request-ID", id)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s: %w: status %d: %s", id, ErrService, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("request %s: decoding response: %w", id, err)
	}
	return nil
}
