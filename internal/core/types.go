package core

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

// Default categorical sentinels, compared against normalized cell text.
const (
	DefaultTrueSentinel  = "true"
	DefaultFalseSentinel = "false"
)

// SortDirection orders the sort stage.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is a known direction.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Row is one record of the table.
type Row struct {
	ID    uuid.UUID // Identity used for selection tracking
	Cells []string  // Cell text in column order
}

// Categorical is a binary filter bound to one column.
// When Value is true rows match the true sentinel, otherwise the false sentinel.
type Categorical struct {
	Column int
	Value  bool
}

// PipelineConfig holds everything the query pipeline reads.
type PipelineConfig struct {
	Categorical   *Categorical  // nil when inactive
	Filter        string        // Text filter, matched as a substring
	FilterColumns []int         // Columns the text filter scans
	SortColumn    *int          // nil when no sort is active
	SortDirection SortDirection // asc or desc
	Page          int           // Zero-based page index
	PageSize      int           // Rows per page, must be positive
}

// clone returns a deep copy so callers cannot alias engine state.
func (c PipelineConfig) clone() PipelineConfig {
	out := c
	if c.Categorical != nil {
		cat := *c.Categorical
		out.Categorical = &cat
	}
	if c.SortColumn != nil {
		col := *c.SortColumn
		out.SortColumn = &col
	}
	out.FilterColumns = append([]int(nil), c.FilterColumns...)
	return out
}

// PageRow is a row of the current page as handed to a renderer.
type PageRow struct {
	ID            uuid.UUID `json:"id"`
	OriginalIndex int       `json:"originalIndex"` // Position in the live RowSet
	Cells         []string  `json:"cells"`
	Selected      bool      `json:"selected"`
}

// State is an explicit snapshot of the engine's configuration and derived views.
// Visible and Page hold indices into the RowSet.
type State struct {
	Config        PipelineConfig
	Visible       []int
	Page          []int
	Selected      []uuid.UUID
	HeaderChecked bool
}

// HeaderToggle is the rendering collaborator's "select all" control.
// The engine pushes the derived header state into it whenever that state is written.
type HeaderToggle interface {
	SetChecked(checked bool)
}

// normalize trims and lower-cases cell text for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
