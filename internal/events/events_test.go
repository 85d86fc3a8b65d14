package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.StateChanges == nil || bus.Outcomes == nil {
		t.Fatal("bus channels are nil")
	}
}

func TestBus_SendReceive(t *testing.T) {
	bus := NewBus()
	ev := StateChangeEvent{From: "READY", To: "CHARGING"}

	go func() {
		bus.StateChanges <- ev
	}()

	select {
	case received := <-bus.StateChanges:
		if received != ev {
			t.Errorf("received %+v, want %+v", received, ev)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_PublishDropsWhenFull(t *testing.T) {
	bus := NewBus()

	for i := 0; i < 10; i++ {
		if !bus.PublishOutcome(OutcomeEvent{Kind: "RUNS", Runs: 4}) {
			t.Fatalf("publish %d dropped before buffer was full", i)
		}
	}
	if bus.PublishOutcome(OutcomeEvent{Kind: "CAUGHT"}) {
		t.Error("publish on a full buffer should report a drop")
	}

	for i := 0; i < 10; i++ {
		<-bus.Outcomes
	}
	if !bus.PublishState(StateChangeEvent{From: "OUTCOME", To: "READY"}) {
		t.Error("PublishState on an empty buffer should succeed")
	}
}
