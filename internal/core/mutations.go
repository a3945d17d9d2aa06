package core

import (
	"sort"

	"github.com/google/uuid"
)

// DeleteSelected removes every selected row of the current page from the RowSet
// and returns how many were removed. Rows are removed highest original index
// first so earlier removals never shift later targets.
//
// The remaining page and VisibleSet are remapped onto the shrunken RowSet, but
// pagination bounds are stale until the next Query.
func (e *Engine) DeleteSelected() (int, error) {
	if !e.selectable {
		return 0, ErrSelectionDisabled
	}

	var targets []int
	for _, i := range e.page {
		if _, ok := e.selected[e.rows[i].ID]; ok {
			targets = append(targets, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(targets)))

	visibleIDs := e.idsOf(e.visible)
	pageIDs := e.idsOf(e.page)

	deleted := make([]uuid.UUID, 0, len(targets))
	for _, i := range targets {
		id := e.rows[i].ID
		deleted = append(deleted, id)
		delete(e.selected, id)
		e.rows = append(e.rows[:i], e.rows[i+1:]...)
	}

	pos := make(map[uuid.UUID]int, len(e.rows))
	for i, r := range e.rows {
		pos[r.ID] = i
	}
	e.visible = indicesOf(visibleIDs, pos)
	e.page = indicesOf(pageIDs, pos)
	e.width = shapeWidth(e.rows)

	e.setHeader(false)

	if len(deleted) > 0 {
		e.logger.Debug("rows deleted", "count", len(deleted), "remaining", len(e.rows))
		e.emit(Event{Kind: EventRowsDeleted, Page: e.cfg.Page, RowIDs: deleted})
	}
	return len(deleted), nil
}

func (e *Engine) idsOf(idx []int) []uuid.UUID {
	ids := make([]uuid.UUID, len(idx))
	for n, i := range idx {
		ids[n] = e.rows[i].ID
	}
	return ids
}

// indicesOf maps identities back to RowSet positions, skipping removed rows.
func indicesOf(ids []uuid.UUID, pos map[uuid.UUID]int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if i, ok := pos[id]; ok {
			out = append(out, i)
		}
	}
	return out
}
