package web

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/JonMunkholm/condenser/internal/core"
)

// Session owns the grid engine behind the HTTP surface. The engine expects a
// single caller, so every handler goes through Do.
type Session struct {
	mu      sync.Mutex
	engine  *core.Engine
	columns []string

	// headerChecked is the select-all state pushed by the engine. It is
	// written and read only while mu is held.
	headerChecked bool
}

// NewSession builds an engine over rows with the session as its header toggle
// and runs the first query. columns names the grid's columns for rendering
// and may be nil.
func NewSession(rows [][]string, columns []string, opts ...core.Option) (*Session, error) {
	s := &Session{columns: columns}
	s.engine = core.NewEngine(rows, s, opts...)
	s.engine.Subscribe(func(ev core.Event) {
		if ev.Kind == core.EventRowsDeleted {
			slog.Info("rows deleted", "count", len(ev.RowIDs), "page", ev.Page)
		}
	})
	if _, err := s.engine.Query(); err != nil {
		return nil, fmt.Errorf("initial query: %w", err)
	}
	return s, nil
}

// SetChecked implements core.HeaderToggle.
func (s *Session) SetChecked(checked bool) {
	s.headerChecked = checked
}

// Do runs fn with exclusive access to the engine.
func (s *Session) Do(fn func(e *core.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}
