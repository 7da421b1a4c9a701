package events

import (
	"context"
	"sync"

	"github.com/courtside/league-night/internal/domain/event"
)

// Recorder is an in-process publisher for tests: it keeps every published
// event in order.
type Recorder struct {
	mu    sync.Mutex
	items []event.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, evt event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, evt)
}

func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event.Event(nil), r.items...)
}

// ByType filters recorded events.
func (r *Recorder) ByType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]event.Event, 0, len(r.items))
	for _, evt := range r.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// NopPublisher discards everything.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, event.Event) {}
