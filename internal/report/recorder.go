// Package report provides core.Sink implementations: structured log output,
// console tables and in-memory capture.
package report

import (
	"sync"
)

type EventKind string

const (
	EventInfo    EventKind = "info"
	EventError   EventKind = "error"
	EventColumns EventKind = "columns"
	EventRow     EventKind = "row"
	EventNoData  EventKind = "no_data"
)

// Event is one captured sink call
type Event struct {
	Kind    EventKind
	Message string
	Columns []string
	Values  []any
}

// Recorder keeps every sink call in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(msg string)  { r.add(Event{Kind: EventInfo, Message: msg}) }
func (r *Recorder) Error(msg string) { r.add(Event{Kind: EventError, Message: msg}) }
func (r *Recorder) NoData()          { r.add(Event{Kind: EventNoData}) }

func (r *Recorder) Columns(cols []string) {
	r.add(Event{Kind: EventColumns, Columns: append([]string(nil), cols...)})
}

func (r *Recorder) Row(values []any) {
	r.add(Event{Kind: EventRow, Values: append([]any(nil), values...)})
}

// Events returns a copy of the captured events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}
