package core

import (
	"fmt"
	"reflect"
	"testing"
)

// ============================================================================
// Fixtures
// ============================================================================

func fruitRows() [][]string {
	return [][]string{
		{"apple", "3", "true"},
		{"Banana", "10", "false"},
		{"cherry", "2", " TRUE "},
		{"date", "abc", "false"},
		{"Elderberry", "0", "yes"},
		{"fig", "b", "true"},
		{"grape", " 7 ", "False"},
	}
}

func numberedRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("row-%02d", i), fmt.Sprintf("%d", i+1)}
	}
	return rows
}

func originalIndices(rows []PageRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.OriginalIndex
	}
	return out
}

func firstCells(rows []PageRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells[0]
	}
	return out
}

func mustQuery(t *testing.T, e *Engine) []PageRow {
	t.Helper()
	rows, err := e.Query()
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	return rows
}

// ============================================================================
// Pagination slice with no filters
// ============================================================================

func TestQuery_NoFiltersPaginatesInOriginalOrder(t *testing.T) {
	tests := []struct {
		page     int
		wantIdx  []int
		wantSize int
	}{
		{page: 0, wantIdx: []int{0, 1, 2, 3, 4}, wantSize: 5},
		{page: 1, wantIdx: []int{5, 6, 7, 8, 9}, wantSize: 5},
		{page: 2, wantIdx: []int{10, 11}, wantSize: 2},
		{page: 3, wantIdx: []int{}, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			e := NewEngine(numberedRows(12), nil)
			e.SetPage(tt.page)

			rows := mustQuery(t, e)
			if len(rows) != tt.wantSize {
				t.Fatalf("len(rows) = %d, want %d", len(rows), tt.wantSize)
			}
			if got := originalIndices(rows); !reflect.DeepEqual(got, tt.wantIdx) {
				t.Errorf("original indices = %v, want %v", got, tt.wantIdx)
			}
			if e.VisibleCount() != 12 {
				t.Errorf("VisibleCount() = %d, want 12", e.VisibleCount())
			}
		})
	}
}

func TestQuery_DefaultPageSize(t *testing.T) {
	e := NewEngine(numberedRows(8), nil)
	if e.PageSize() != DefaultPageSize {
		t.Fatalf("PageSize() = %d, want %d", e.PageSize(), DefaultPageSize)
	}
	if got := len(mustQuery(t, e)); got != 5 {
		t.Errorf("len(rows) = %d, want 5", got)
	}
}

// ============================================================================
// Text filter
// ============================================================================

func TestQuery_TextFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		columns []int
		want    []string
	}{
		{
			name:    "substring is case-insensitive",
			filter:  "an",
			columns: []int{0},
			want:    []string{"Banana"},
		},
		{
			name:    "filter is trimmed",
			filter:  "  AN  ",
			columns: []int{0},
			want:    []string{"Banana"},
		},
		{
			name:    "empty filter keeps every row",
			filter:  "",
			columns: []int{0},
			want:    []string{"apple", "Banana", "cherry", "date", "Elderberry", "fig", "grape"},
		},
		{
			name:    "whitespace filter keeps every row",
			filter:  "   ",
			columns: []int{0},
			want:    []string{"apple", "Banana", "cherry", "date", "Elderberry", "fig", "grape"},
		},
		{
			name:    "no designated columns keeps every row",
			filter:  "zzz",
			columns: nil,
			want:    []string{"apple", "Banana", "cherry", "date", "Elderberry", "fig", "grape"},
		},
		{
			name:    "any designated column may match",
			filter:  "b",
			columns: []int{0, 1},
			want:    []string{"Banana", "date", "Elderberry", "fig"},
		},
		{
			name:    "only designated columns are scanned",
			filter:  "true",
			columns: []int{0},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(fruitRows(), nil, WithPageSize(10))
			e.SetFilter(tt.filter)
			if err := e.SetFilterColumns(tt.columns...); err != nil {
				t.Fatalf("SetFilterColumns() error = %v", err)
			}

			rows := mustQuery(t, e)
			if got := firstCells(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Categorical filter
// ============================================================================

func TestQuery_CategoricalFilter(t *testing.T) {
	t.Run("true state matches the true sentinel", func(t *testing.T) {
		e := NewEngine(fruitRows(), nil, WithPageSize(10))
		if err := e.SetCategorical(&Categorical{Column: 2, Value: true}); err != nil {
			t.Fatalf("SetCategorical() error = %v", err)
		}
		want := []string{"apple", "cherry", "fig"}
		if got := firstCells(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
			t.Errorf("rows = %v, want %v", got, want)
		}
	})

	t.Run("false state matches the false sentinel", func(t *testing.T) {
		e := NewEngine(fruitRows(), nil, WithPageSize(10))
		if err := e.SetCategorical(&Categorical{Column: 2, Value: false}); err != nil {
			t.Fatalf("SetCategorical() error = %v", err)
		}
		want := []string{"Banana", "date", "grape"}
		if got := firstCells(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
			t.Errorf("rows = %v, want %v", got, want)
		}
	})

	t.Run("custom sentinels", func(t *testing.T) {
		e := NewEngine(fruitRows(), nil, WithPageSize(10), WithSentinels(" YES ", "no"))
		if err := e.SetCategorical(&Categorical{Column: 2, Value: true}); err != nil {
			t.Fatalf("SetCategorical() error = %v", err)
		}
		want := []string{"Elderberry"}
		if got := firstCells(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
			t.Errorf("rows = %v, want %v", got, want)
		}
	})

	t.Run("runs before the text filter", func(t *testing.T) {
		e := NewEngine(fruitRows(), nil, WithPageSize(10))
		_ = e.SetCategorical(&Categorical{Column: 2, Value: true})
		e.SetFilter("e")
		_ = e.SetFilterColumns(0)
		want := []string{"apple", "cherry"}
		if got := firstCells(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
			t.Errorf("rows = %v, want %v", got, want)
		}
	})

	t.Run("nil deactivates", func(t *testing.T) {
		e := NewEngine(fruitRows(), nil, WithPageSize(10))
		_ = e.SetCategorical(&Categorical{Column: 2, Value: true})
		_ = e.SetCategorical(nil)
		if got := len(mustQuery(t, e)); got != 7 {
			t.Errorf("len(rows) = %d, want 7", got)
		}
	})
}

// ============================================================================
// Sort
// ============================================================================

func TestQuery_SortMixedNumericAndText(t *testing.T) {
	rows := [][]string{
		{"10"},
		{"2"},
		{"abc"},
		{"0"},
		{"b"},
		{" 3 "},
	}

	tests := []struct {
		name string
		dir  SortDirection
		want []int
	}{
		// Numbers first in numeric order, then text; "0" is not treated as a number.
		{name: "ascending", dir: SortAsc, want: []int{1, 5, 0, 3, 2, 4}},
		{name: "descending mirrors ascending", dir: SortDesc, want: []int{4, 2, 3, 0, 5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(rows, nil, WithPageSize(10))
			if err := e.SetSort(0, tt.dir); err != nil {
				t.Fatalf("SetSort() error = %v", err)
			}
			if got := originalIndices(mustQuery(t, e)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_SortNumericBeforeLexical(t *testing.T) {
	e := NewEngine([][]string{{"10"}, {"2"}, {"abc"}}, nil)
	_ = e.SetSort(0, SortAsc)

	want := []string{"2", "10", "abc"}
	if got := firstCells(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestQuery_SortEqualKeysKeepRowSetOrder(t *testing.T) {
	rows := [][]string{{"x", "a"}, {"Y", "b"}, {" X", "c"}, {"y", "d"}}

	for _, tt := range []struct {
		dir  SortDirection
		want []string
	}{
		{dir: SortAsc, want: []string{"a", "c", "b", "d"}},
		{dir: SortDesc, want: []string{"b", "d", "a", "c"}},
	} {
		t.Run(string(tt.dir), func(t *testing.T) {
			e := NewEngine(rows, nil)
			_ = e.SetSort(0, tt.dir)

			page := mustQuery(t, e)
			got := make([]string, len(page))
			for i, r := range page {
				got[i] = r.Cells[1]
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_SortThenPaginate(t *testing.T) {
	e := NewEngine(numberedRows(12), nil)
	_ = e.SetSort(1, SortDesc)
	e.SetPage(2)

	want := []int{1, 0}
	if got := originalIndices(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
		t.Errorf("page 2 = %v, want %v", got, want)
	}
}

func TestQuery_ClearSortRestoresRowSetOrder(t *testing.T) {
	e := NewEngine(numberedRows(4), nil)
	_ = e.SetSort(1, SortDesc)
	mustQuery(t, e)
	e.ClearSort()

	want := []int{0, 1, 2, 3}
	if got := originalIndices(mustQuery(t, e)); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// ============================================================================
// Configuration validation
// ============================================================================

func TestConfiguration_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		apply func(e *Engine) error
	}{
		{name: "zero page size", apply: func(e *Engine) error { return e.SetPageSize(0) }},
		{name: "negative page size", apply: func(e *Engine) error { return e.SetPageSize(-5) }},
		{name: "sort column past width", apply: func(e *Engine) error { return e.SetSort(3, SortAsc) }},
		{name: "negative sort column", apply: func(e *Engine) error { return e.SetSort(-1, SortAsc) }},
		{name: "bad sort direction", apply: func(e *Engine) error { return e.SetSort(0, "up") }},
		{name: "filter column past width", apply: func(e *Engine) error { return e.SetFilterColumns(0, 9) }},
		{name: "categorical column past width", apply: func(e *Engine) error {
			return e.SetCategorical(&Categorical{Column: 4})
		}},
		{name: "negative page in config", apply: func(e *Engine) error {
			return e.SetConfig(PipelineConfig{Page: -1, PageSize: 5})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(fruitRows(), nil)
			before := e.Config()

			err := tt.apply(e)
			if !IsInvalidConfiguration(err) {
				t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
			}
			if !reflect.DeepEqual(e.Config(), before) {
				t.Errorf("config changed after rejected update: %+v", e.Config())
			}
		})
	}
}

func TestQuery_FailsFastOnInvalidPageSize(t *testing.T) {
	e := NewEngine(fruitRows(), nil, WithPageSize(0))

	rows, err := e.Query()
	if !IsInvalidConfiguration(err) {
		t.Fatalf("Query() error = %v, want ErrInvalidConfiguration", err)
	}
	if rows != nil {
		t.Errorf("Query() rows = %v, want nil", rows)
	}
}

func TestWidth_UsesNarrowestRow(t *testing.T) {
	e := NewEngine([][]string{{"a", "b", "c"}, {"d"}, {"e", "f"}}, nil)
	if e.Width() != 1 {
		t.Fatalf("Width() = %d, want 1", e.Width())
	}
	if err := e.SetSort(1, SortAsc); !IsInvalidConfiguration(err) {
		t.Errorf("SetSort(1) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestEmptyRowSet(t *testing.T) {
	e := NewEngine(nil, nil)
	if err := e.SetSort(3, SortAsc); err != nil {
		t.Fatalf("SetSort() on empty set error = %v", err)
	}
	rows := mustQuery(t, e)
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
	if e.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", e.PageCount())
	}
}

// ============================================================================
// Ownership
// ============================================================================

func TestNewEngine_SnapshotsInput(t *testing.T) {
	input := fruitRows()
	e := NewEngine(input, nil)

	input[0][0] = "mutated"
	input = append(input, []string{"extra", "1", "true"})

	if e.Len() != 7 {
		t.Errorf("Len() = %d, want 7", e.Len())
	}
	if got := e.Rows()[0].Cells[0]; got != "apple" {
		t.Errorf("first cell = %q, want %q", got, "apple")
	}
}

func TestQuery_ReturnedCellsDoNotAliasRowSet(t *testing.T) {
	e := NewEngine(fruitRows(), nil)
	rows := mustQuery(t, e)
	rows[0].Cells[0] = "mutated"

	if got := mustQuery(t, e)[0].Cells[0]; got != "apple" {
		t.Errorf("first cell = %q, want %q", got, "apple")
	}
}

func TestNewEngine_AssignsDistinctIdentities(t *testing.T) {
	e := NewEngine(numberedRows(20), nil)
	seen := make(map[string]bool)
	for _, r := range e.Rows() {
		if seen[r.ID.String()] {
			t.Fatalf("duplicate row id %s", r.ID)
		}
		seen[r.ID.String()] = true
	}
}

func TestState_Snapshot(t *testing.T) {
	e := NewEngine(numberedRows(7), nil)
	_ = e.SetSort(1, SortDesc)
	rows := mustQuery(t, e)
	_ = e.ToggleOne(rows[1].ID)

	st := e.State()
	if !reflect.DeepEqual(st.Page, []int{6, 5, 4, 3, 2}) {
		t.Errorf("State().Page = %v", st.Page)
	}
	if len(st.Visible) != 7 {
		t.Errorf("len(State().Visible) = %d, want 7", len(st.Visible))
	}
	if len(st.Selected) != 1 || st.Selected[0] != rows[1].ID {
		t.Errorf("State().Selected = %v, want [%s]", st.Selected, rows[1].ID)
	}
	if st.Config.SortColumn == nil || *st.Config.SortColumn != 1 {
		t.Errorf("State().Config.SortColumn = %v, want 1", st.Config.SortColumn)
	}
}
