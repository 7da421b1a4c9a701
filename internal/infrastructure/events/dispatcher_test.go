package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/platform/logging"
)

type collectingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *collectingSink) Name() string { return "collector" }

func (s *collectingSink) Handle(_ context.Context, evt event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type failingSink struct{}

func (failingSink) Name() string { return "failing" }

func (failingSink) Handle(context.Context, event.Event) error {
	return errors.New("handler broke")
}

type panickingSink struct{}

func (panickingSink) Name() string { return "panicking" }

func (panickingSink) Handle(context.Context, event.Event) error {
	panic("handler panicked")
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	t.Parallel()

	first := &collectingSink{}
	second := &collectingSink{}
	d, err := NewDispatcher(2, time.Second, logging.NewNop(), first, second)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	for i := 0; i < 5; i++ {
		d.Publish(context.Background(), event.Event{Type: event.TypeMatchAssigned, NightID: "night-1"})
	}
	d.Close()

	if first.count() != 5 {
		t.Fatalf("first sink got %d events, want 5", first.count())
	}
	if second.count() != 5 {
		t.Fatalf("second sink got %d events, want 5", second.count())
	}
}

func TestDispatcher_SinkFailureDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	collector := &collectingSink{}
	d, err := NewDispatcher(2, time.Second, logging.NewNop(), failingSink{}, panickingSink{}, collector)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	d.Publish(context.Background(), event.Event{Type: event.TypeScorePending, NightID: "night-1"})
	d.Close()

	if collector.count() != 1 {
		t.Fatalf("collector got %d events, want 1", collector.count())
	}
}

func TestDispatcher_NoSinksIsNoOp(t *testing.T) {
	t.Parallel()

	d, err := NewDispatcher(1, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	d.Publish(context.Background(), event.Event{Type: event.TypeNightCompleted, NightID: "night-1"})
	d.Close()
}
