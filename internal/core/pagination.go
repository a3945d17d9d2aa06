package core

// HasNext reports whether a page follows the current one in the last computed VisibleSet.
func (e *Engine) HasNext() bool {
	if e.cfg.PageSize <= 0 || len(e.visible) == 0 {
		return false
	}
	return e.cfg.Page < (len(e.visible)-1)/e.cfg.PageSize
}

// HasPrev reports whether the current page is past the first.
func (e *Engine) HasPrev() bool {
	return e.cfg.Page > 0
}

// Next advances one page when HasNext. The header toggle is cleared either way.
// Call Query afterwards to compute the new page.
func (e *Engine) Next() {
	e.setHeader(false)
	if !e.HasNext() {
		return
	}
	e.movePage(e.cfg.Page + 1)
}

// Prev moves back one page when HasPrev. The header toggle is cleared either way.
func (e *Engine) Prev() {
	e.setHeader(false)
	if !e.HasPrev() {
		return
	}
	e.movePage(e.cfg.Page - 1)
}

// movePage switches the page index and drops marks that belonged to the old page.
func (e *Engine) movePage(page int) {
	e.cfg.Page = page
	e.clearSelection()
	e.emit(Event{Kind: EventPageChanged, Page: page})
}

// Page returns the current page index.
func (e *Engine) Page() int {
	return e.cfg.Page
}

// PageSize returns the configured rows per page.
func (e *Engine) PageSize() int {
	return e.cfg.PageSize
}

// VisibleCount returns the size of the last computed VisibleSet.
func (e *Engine) VisibleCount() int {
	return len(e.visible)
}

// PageCount returns how many pages the last computed VisibleSet spans.
// An empty VisibleSet still has one (empty) page.
func (e *Engine) PageCount() int {
	if e.cfg.PageSize <= 0 || len(e.visible) == 0 {
		return 1
	}
	return (len(e.visible) + e.cfg.PageSize - 1) / e.cfg.PageSize
}
