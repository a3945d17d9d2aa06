package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ToggleAll marks every row on the current page as selected or unselected and
// sets the header toggle to checked.
func (e *Engine) ToggleAll(checked bool) error {
	if !e.selectable {
		return ErrSelectionDisabled
	}

	ids := make([]uuid.UUID, 0, len(e.page))
	for _, i := range e.page {
		id := e.rows[i].ID
		_, was := e.selected[id]
		if checked && !was {
			e.selected[id] = struct{}{}
			ids = append(ids, id)
		} else if !checked && was {
			delete(e.selected, id)
			ids = append(ids, id)
		}
	}

	e.setHeader(checked)
	if len(ids) > 0 {
		e.emit(Event{Kind: EventSelectionChanged, Page: e.cfg.Page, HeaderChecked: checked, RowIDs: ids})
	}
	return nil
}

// ToggleOne flips the selection of one row on the current page, then derives
// the header toggle from whether every row on the page is selected.
func (e *Engine) ToggleOne(id uuid.UUID) error {
	if !e.selectable {
		return ErrSelectionDisabled
	}
	if !e.onPage(id) {
		return fmt.Errorf("%w: row %s is not on page %d", ErrStaleReference, id, e.cfg.Page)
	}

	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}

	all := e.IsAllSelected()
	e.setHeader(all)
	e.emit(Event{Kind: EventSelectionChanged, Page: e.cfg.Page, HeaderChecked: all, RowIDs: []uuid.UUID{id}})
	return nil
}

// IsAllSelected reports whether every row on the current page is selected.
// An empty page is vacuously all selected; an engine without selection never is.
func (e *Engine) IsAllSelected() bool {
	if !e.selectable {
		return false
	}
	for _, i := range e.page {
		if _, ok := e.selected[e.rows[i].ID]; !ok {
			return false
		}
	}
	return true
}

// IsSelected reports whether the row is marked on the current page.
func (e *Engine) IsSelected(id uuid.UUID) bool {
	_, ok := e.selected[id]
	return ok
}

// CheckedRows returns the selected rows of the current page in page order.
func (e *Engine) CheckedRows() []PageRow {
	if !e.selectable {
		return nil
	}
	var out []PageRow
	for _, i := range e.page {
		if _, ok := e.selected[e.rows[i].ID]; ok {
			out = append(out, e.pageRow(i))
		}
	}
	return out
}

// clearSelection drops every mark. Used when the page changes under the selection.
func (e *Engine) clearSelection() {
	if len(e.selected) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(e.selected))
	for id := range e.selected {
		ids = append(ids, id)
	}
	e.selected = make(map[uuid.UUID]struct{})
	e.emit(Event{Kind: EventSelectionChanged, Page: e.cfg.Page, RowIDs: ids})
}

func (e *Engine) onPage(id uuid.UUID) bool {
	for _, i := range e.page {
		if e.rows[i].ID == id {
			return true
		}
	}
	return false
}
