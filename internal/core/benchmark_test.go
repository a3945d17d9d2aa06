package core

import (
	"fmt"
	"testing"
)

// benchRows returns n rows mixing numeric, text and sentinel cells.
func benchRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		qty := fmt.Sprint((i * 7919) % 1000)
		if i%10 == 0 {
			qty = "n/a"
		}
		flag := "true"
		if i%3 == 0 {
			flag = "false"
		}
		rows[i] = []string{fmt.Sprintf("item-%05d", i), qty, flag}
	}
	return rows
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

// BenchmarkQuery_Unfiltered measures pagination alone.
func BenchmarkQuery_Unfiltered(b *testing.B) {
	e := NewEngine(benchRows(10000), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Query()
	}
}

// BenchmarkQuery_TextFilter measures the substring scan over two columns.
func BenchmarkQuery_TextFilter(b *testing.B) {
	e := NewEngine(benchRows(10000), nil)
	e.SetFilter("ITEM-00")
	e.SetFilterColumns(0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Query()
	}
}

// BenchmarkQuery_MixedSort measures the stable sort over numeric and text keys.
func BenchmarkQuery_MixedSort(b *testing.B) {
	e := NewEngine(benchRows(10000), nil)
	e.SetSort(1, SortDesc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Query()
	}
}

// BenchmarkQuery_Full runs every stage.
func BenchmarkQuery_Full(b *testing.B) {
	e := NewEngine(benchRows(10000), nil, WithPageSize(50))
	e.SetCategorical(&Categorical{Column: 2, Value: true})
	e.SetFilter("1")
	e.SetFilterColumns(0, 1)
	e.SetSort(1, SortAsc)
	e.SetPage(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Query()
	}
}

// ============================================================================
// Mutation Benchmarks
// ============================================================================

// BenchmarkDeleteSelected measures deleting a full page from a large set.
func BenchmarkDeleteSelected(b *testing.B) {
	rows := benchRows(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := NewEngine(rows, nil, WithPageSize(100))
		e.SetPage(50)
		e.Query()
		e.ToggleAll(true)
		b.StartTimer()

		e.DeleteSelected()
	}
}

// BenchmarkNewSortKey measures numeric coercion of a single cell.
func BenchmarkNewSortKey(b *testing.B) {
	cells := []string{"123", " -4.5 ", "abc", "0", "1e3", ""}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, c := range cells {
			newSortKey(c)
		}
	}
}
