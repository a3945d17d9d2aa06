package core

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Query re-derives the VisibleSet and CurrentPage from the live RowSet and
// returns the CurrentPage. The header toggle is reset to unchecked.
//
// Stages run in order: categorical filter, text filter, sort, pagination.
// Selection marks survive only for rows that are still on the new page.
func (e *Engine) Query() ([]PageRow, error) {
	if err := e.validate(e.cfg); err != nil {
		e.logger.Debug("query rejected", "error", err)
		return nil, err
	}

	e.setHeader(false)

	idx := make([]int, 0, len(e.rows))
	for i := range e.rows {
		if e.matchCategorical(i) && e.matchText(i) {
			idx = append(idx, i)
		}
	}

	if e.cfg.SortColumn != nil {
		e.sortIndices(idx, *e.cfg.SortColumn, e.cfg.SortDirection)
	}

	e.visible = idx
	e.page = paginate(idx, e.cfg.Page, e.cfg.PageSize)

	kept := make(map[uuid.UUID]struct{}, len(e.page))
	for _, i := range e.page {
		id := e.rows[i].ID
		if _, ok := e.selected[id]; ok {
			kept[id] = struct{}{}
		}
	}
	e.selected = kept

	e.logger.Debug("query",
		"rows", len(e.rows),
		"visible", len(e.visible),
		"page", e.cfg.Page,
		"page_rows", len(e.page),
	)
	e.emit(Event{Kind: EventQueried, Page: e.cfg.Page, Visible: len(e.visible)})

	return e.currentPage(), nil
}

// matchCategorical keeps rows whose designated column equals the sentinel for
// the filter's state. All rows pass when the filter is inactive.
func (e *Engine) matchCategorical(i int) bool {
	cat := e.cfg.Categorical
	if cat == nil {
		return true
	}
	want := e.falseSentinel
	if cat.Value {
		want = e.trueSentinel
	}
	return normalize(e.rows[i].Cells[cat.Column]) == want
}

// matchText keeps rows where any designated column contains the filter text.
func (e *Engine) matchText(i int) bool {
	filter := normalize(e.cfg.Filter)
	if filter == "" || len(e.cfg.FilterColumns) == 0 {
		return true
	}
	cells := e.rows[i].Cells
	for _, col := range e.cfg.FilterColumns {
		if strings.Contains(normalize(cells[col]), filter) {
			return true
		}
	}
	return false
}

// sortKey is the comparable form of one cell.
type sortKey struct {
	text    string
	num     float64
	numeric bool
}

// newSortKey normalizes text and treats it as a number when it parses to a
// finite, non-zero value.
func newSortKey(cell string) sortKey {
	k := sortKey{text: normalize(cell)}
	if v, err := strconv.ParseFloat(k.text, 64); err == nil && v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
		k.num = v
		k.numeric = true
	}
	return k
}

// lessAsc orders numbers numerically, numbers before text, and text lexically.
func lessAsc(a, b sortKey) bool {
	switch {
	case a.numeric && b.numeric:
		return a.num < b.num
	case a.numeric != b.numeric:
		return a.numeric
	default:
		return a.text < b.text
	}
}

// sortIndices orders idx in place by column col. Equal keys keep their
// RowSet order in both directions.
func (e *Engine) sortIndices(idx []int, col int, dir SortDirection) {
	keys := make(map[int]sortKey, len(idx))
	for _, i := range idx {
		keys[i] = newSortKey(e.rows[i].Cells[col])
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if dir == SortDesc {
			return lessAsc(kb, ka)
		}
		return lessAsc(ka, kb)
	})
}

// paginate returns the [page*size, (page+1)*size) window of idx.
// Pages past the end are empty; the bound is checked by division so a
// huge page cannot overflow.
func paginate(idx []int, page, size int) []int {
	if size <= 0 || page < 0 || page >= (len(idx)+size-1)/size {
		return []int{}
	}
	start := page * size
	end := len(idx)
	if size < end-start {
		end = start + size
	}
	return append([]int(nil), idx[start:end]...)
}

// currentPage materializes the CurrentPage for callers.
func (e *Engine) currentPage() []PageRow {
	out := make([]PageRow, len(e.page))
	for n, i := range e.page {
		out[n] = e.pageRow(i)
	}
	return out
}

func (e *Engine) pageRow(i int) PageRow {
	r := e.rows[i]
	_, sel := e.selected[r.ID]
	return PageRow{
		ID:            r.ID,
		OriginalIndex: i,
		Cells:         append([]string(nil), r.Cells...),
		Selected:      sel,
	}
}

// CurrentPage returns the last computed page without re-running the pipeline.
func (e *Engine) CurrentPage() []PageRow {
	return e.currentPage()
}
