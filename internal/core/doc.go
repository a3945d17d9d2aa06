// Package core provides the table engine behind every row-rendering surface.
//
// The engine owns a snapshot of the rows it was built with and answers one
// question on demand: which rows should be shown right now. It holds no UI
// state beyond a page-scoped selection and a derived "select all" header flag,
// so the same engine drives the web grid, the terminal UI and the CLI printer.
//
// # Pipeline
//
// [Engine.Query] re-derives the visible page from the full RowSet every time:
//
//  1. Categorical filter: keep rows whose column equals the true or false sentinel
//  2. Text filter: keep rows where any designated column contains the filter text
//  3. Sort: numeric-aware, stable, ascending or descending
//  4. Pagination: the [page*size, (page+1)*size) window
//
// Cell text is trimmed and lower-cased before any comparison. Derived views are
// index lists into the RowSet, so every [PageRow] carries its original index.
//
// # Selection
//
// Selection is scoped to the current page. [Engine.ToggleAll] and
// [Engine.ToggleOne] mark rows; the header flag is checked only when every row
// on the page is selected. Leaving the page forgets the marks.
//
// # Mutation
//
// [Engine.DeleteSelected] removes selected rows highest index first, then the
// caller re-runs [Engine.Query].
//
// # Notifications
//
// Renderers subscribe with [Engine.Subscribe] instead of the engine reaching
// into rendered elements. A [HeaderToggle] passed to [NewEngine] is kept in
// sync with the header flag.
//
// # Error Handling
//
// Configuration problems wrap [ErrInvalidConfiguration]; operations on rows
// that left the page wrap [ErrStaleReference]. [MapError] turns either into a
// coded [UserMessage] for display.
package core
