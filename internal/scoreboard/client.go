package scoreboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrStatus = errors.New("scoreboard: unexpected status")

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

// PostScore reports a player's cumulative score. Only the status matters;
// the response body is ignored.
func (c *Client) PostScore(ctx context.Context, name string, score int) error {
	payload, err := json.Marshal(Entry{Name: name, Score: score})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/update-score", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("posting score: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("posting score: %w %d", ErrStatus, resp.StatusCode)
	}
	return nil
}

// Leaderboard fetches the current ranking in server order.
func (c *Client) Leaderboard(ctx context.Context) (Ranking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching leaderboard: %w %d", ErrStatus, resp.StatusCode)
	}

	var r Ranking
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding leaderboard: %w", err)
	}
	return r, nil
}
