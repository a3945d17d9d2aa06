package core

import (
	"log/slog"

	"github.com/google/uuid"
)

// Engine holds the full RowSet and the pipeline state derived from it.
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines (an HTTP server, for instance) must serialize access.
type Engine struct {
	rows   []Row
	width  int
	header HeaderToggle
	logger *slog.Logger

	selectable    bool
	trueSentinel  string
	falseSentinel string

	cfg PipelineConfig

	// Derived views, as indices into rows.
	visible  []int
	page     []int
	selected map[uuid.UUID]struct{}

	headerChecked bool

	listeners []listenerEntry
	nextID    int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPageSize sets the initial page size. Non-positive values are rejected by the
// first Query with ErrInvalidConfiguration.
func WithPageSize(n int) Option {
	return func(e *Engine) { e.cfg.PageSize = n }
}

// WithoutSelection builds an engine with no selection column.
func WithoutSelection() Option {
	return func(e *Engine) { e.selectable = false }
}

// WithSentinels overrides the text the categorical filter matches for true and false.
func WithSentinels(trueVal, falseVal string) Option {
	return func(e *Engine) {
		e.trueSentinel = normalize(trueVal)
		e.falseSentinel = normalize(falseVal)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine snapshots rows and returns an engine over the copy.
// header may be nil when the renderer has no select-all control.
func NewEngine(rows [][]string, header HeaderToggle, opts ...Option) *Engine {
	e := &Engine{
		header:        header,
		logger:        slog.Default(),
		selectable:    true,
		trueSentinel:  DefaultTrueSentinel,
		falseSentinel: DefaultFalseSentinel,
		cfg: PipelineConfig{
			SortDirection: SortAsc,
			PageSize:      DefaultPageSize,
		},
		selected: make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.rows = make([]Row, len(rows))
	for i, cells := range rows {
		e.rows[i] = Row{
			ID:    uuid.New(),
			Cells: append([]string(nil), cells...),
		}
	}
	e.width = shapeWidth(e.rows)

	e.logger.Debug("engine created",
		"rows", len(e.rows),
		"width", e.width,
		"page_size", e.cfg.PageSize,
		"selectable", e.selectable,
	)
	return e
}

// shapeWidth returns the smallest cell count across rows, or -1 for an empty set.
func shapeWidth(rows []Row) int {
	if len(rows) == 0 {
		return -1
	}
	w := len(rows[0].Cells)
	for _, r := range rows[1:] {
		if len(r.Cells) < w {
			w = len(r.Cells)
		}
	}
	return w
}

// Len returns the number of rows in the live RowSet.
func (e *Engine) Len() int {
	return len(e.rows)
}

// Width returns the number of columns every row has, or -1 when the RowSet is empty.
func (e *Engine) Width() int {
	return e.width
}

// Selectable reports whether the engine tracks selection.
func (e *Engine) Selectable() bool {
	return e.selectable
}

// Rows returns a copy of the live RowSet in its current order.
func (e *Engine) Rows() []Row {
	out := make([]Row, len(e.rows))
	for i, r := range e.rows {
		out[i] = Row{ID: r.ID, Cells: append([]string(nil), r.Cells...)}
	}
	return out
}

// Config returns a copy of the current pipeline configuration.
func (e *Engine) Config() PipelineConfig {
	return e.cfg.clone()
}

// State returns a snapshot of configuration and derived views.
func (e *Engine) State() State {
	st := State{
		Config:        e.cfg.clone(),
		Visible:       append([]int(nil), e.visible...),
		Page:          append([]int(nil), e.page...),
		HeaderChecked: e.headerChecked,
	}
	for _, idx := range e.page {
		if _, ok := e.selected[e.rows[idx].ID]; ok {
			st.Selected = append(st.Selected, e.rows[idx].ID)
		}
	}
	return st
}

// SetFilter sets the text filter. Any string is accepted.
func (e *Engine) SetFilter(filter string) {
	e.cfg.Filter = filter
}

// SetFilterColumns sets the columns the text filter scans.
func (e *Engine) SetFilterColumns(cols ...int) error {
	for _, c := range cols {
		if err := e.checkColumn("filter", c); err != nil {
			return err
		}
	}
	e.cfg.FilterColumns = append([]int(nil), cols...)
	return nil
}

// SetCategorical activates the categorical filter, or deactivates it when cat is nil.
func (e *Engine) SetCategorical(cat *Categorical) error {
	if cat == nil {
		e.cfg.Categorical = nil
		return nil
	}
	if err := e.checkColumn("categorical", cat.Column); err != nil {
		return err
	}
	c := *cat
	e.cfg.Categorical = &c
	return nil
}

// SetSort sorts by col in direction dir.
func (e *Engine) SetSort(col int, dir SortDirection) error {
	if err := e.checkColumn("sort", col); err != nil {
		return err
	}
	if !dir.Valid() {
		return configError("sort direction %q", dir)
	}
	e.cfg.SortColumn = &col
	e.cfg.SortDirection = dir
	return nil
}

// SetSortDirection changes the direction without touching the sort column.
func (e *Engine) SetSortDirection(dir SortDirection) error {
	if !dir.Valid() {
		return configError("sort direction %q", dir)
	}
	e.cfg.SortDirection = dir
	return nil
}

// ClearSort leaves survivors in RowSet order.
func (e *Engine) ClearSort() {
	e.cfg.SortColumn = nil
}

// SetPage assigns the page index. It is not clamped against the VisibleSet;
// a page past the end yields an empty CurrentPage.
func (e *Engine) SetPage(page int) {
	e.cfg.Page = page
}

// SetPageSize sets the rows per page.
func (e *Engine) SetPageSize(size int) error {
	if size <= 0 {
		return configError("page size must be positive, got %d", size)
	}
	e.cfg.PageSize = size
	return nil
}

// SetConfig replaces the whole pipeline configuration after validating it.
func (e *Engine) SetConfig(cfg PipelineConfig) error {
	if cfg.SortDirection == "" {
		cfg.SortDirection = SortAsc
	}
	if err := e.validate(cfg); err != nil {
		e.logger.Debug("configuration rejected", "error", err)
		return err
	}
	e.cfg = cfg.clone()
	return nil
}

// validate checks every field that can make a query fail.
func (e *Engine) validate(cfg PipelineConfig) error {
	if cfg.PageSize <= 0 {
		return configError("page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.Page < 0 {
		return configError("negative page %d", cfg.Page)
	}
	if !cfg.SortDirection.Valid() {
		return configError("sort direction %q", cfg.SortDirection)
	}
	for _, c := range cfg.FilterColumns {
		if err := e.checkColumn("filter", c); err != nil {
			return err
		}
	}
	if cfg.SortColumn != nil {
		if err := e.checkColumn("sort", *cfg.SortColumn); err != nil {
			return err
		}
	}
	if cfg.Categorical != nil {
		if err := e.checkColumn("categorical", cfg.Categorical.Column); err != nil {
			return err
		}
	}
	return nil
}

// checkColumn rejects indices that not every row has.
func (e *Engine) checkColumn(role string, col int) error {
	if col < 0 || (e.width >= 0 && col >= e.width) {
		return configError("%s column %d out of range for %d columns", role, col, e.width)
	}
	return nil
}

// setHeader records the header toggle state and pushes it to the renderer.
func (e *Engine) setHeader(checked bool) {
	changed := e.headerChecked != checked
	e.headerChecked = checked
	if e.header != nil && e.selectable {
		e.header.SetChecked(checked)
	}
	if changed {
		e.emit(Event{Kind: EventHeaderChanged, HeaderChecked: checked})
	}
}

// HeaderChecked returns the header toggle state.
func (e *Engine) HeaderChecked() bool {
	return e.headerChecked
}
