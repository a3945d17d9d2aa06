package core

import "github.com/google/uuid"

// EventKind identifies what changed.
type EventKind string

const (
	EventQueried          EventKind = "queried"
	EventSelectionChanged EventKind = "selection_changed"
	EventHeaderChanged    EventKind = "header_changed"
	EventPageChanged      EventKind = "page_changed"
	EventRowsDeleted      EventKind = "rows_deleted"
)

// Event is delivered to listeners after the engine state has been updated.
type Event struct {
	Kind          EventKind
	Page          int         // Page index after the change
	HeaderChecked bool        // Header toggle state after the change
	RowIDs        []uuid.UUID // Rows whose selection changed, or rows deleted
	Visible       int         // VisibleSet size for EventQueried
}

// Listener receives engine notifications. Listeners run synchronously on the
// caller's goroutine and must not call back into the engine.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it.
func (e *Engine) Subscribe(fn Listener) func() {
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to every listener in subscription order.
func (e *Engine) emit(ev Event) {
	for _, l := range e.listeners {
		l.fn(ev)
	}
}
