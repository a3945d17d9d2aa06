package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/condenser/internal/core"
	"github.com/JonMunkholm/condenser/internal/source"
)

func fruitTable() *source.Table {
	return &source.Table{
		Header: []string{"name", "qty", "ripe"},
		Rows: [][]string{
			{"apple", "3", "true"},
			{"Banana", "10", "false"},
			{"cherry", "2", "true"},
			{"date", "abc", "false"},
		},
	}
}

func TestPrintPage(t *testing.T) {
	col := 1
	tests := []struct {
		name    string
		opts    printOptions
		want    []string
		notWant []string
	}{
		{
			name: "first page",
			opts: printOptions{PageSize: 2},
			want: []string{"apple", "Banana", "page 1/2 (4 rows)"},
		},
		{
			name:    "sorted descending",
			opts:    printOptions{Sort: &col, Desc: true, PageSize: 1},
			want:    []string{"date", "page 1/4"},
			notWant: []string{"apple"},
		},
		{
			name:    "filtered",
			opts:    printOptions{Filter: "AN", PageSize: 5},
			want:    []string{"Banana", "page 1/1 (1 rows)"},
			notWant: []string{"cherry"},
		},
		{
			name:    "category",
			opts:    printOptions{Category: "2=false", PageSize: 5},
			want:    []string{"Banana", "date"},
			notWant: []string{"apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printPage(&buf, fruitTable(), tt.opts); err != nil {
				t.Fatalf("printPage() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestPrintPage_InvalidConfiguration(t *testing.T) {
	var buf bytes.Buffer
	err := printPage(&buf, fruitTable(), printOptions{PageSize: 0})
	if err == nil || !strings.Contains(err.Error(), "CFG001") {
		t.Errorf("printPage() error = %v, want CFG001", err)
	}
	if !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Errorf("printPage() error = %v, want it to wrap ErrInvalidConfiguration", err)
	}
}

func TestPrintPage_HeaderPaddedToWidth(t *testing.T) {
	table := &source.Table{
		Header: []string{"name"},
		Rows:   [][]string{{"apple", "3"}},
	}
	var buf bytes.Buffer
	if err := printPage(&buf, table, printOptions{PageSize: 5}); err != nil {
		t.Fatalf("printPage() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Column 2") {
		t.Errorf("output missing generated header:\n%s", buf.String())
	}
}

func TestParseCategory(t *testing.T) {
	cat, err := parseCategory("2 = TRUE")
	if err != nil {
		t.Fatalf("parseCategory() error = %v", err)
	}
	if cat.Column != 2 || !cat.Value {
		t.Errorf("parseCategory() = %+v", cat)
	}

	for _, bad := range []string{"2", "x=true", "2=maybe"} {
		if _, err := parseCategory(bad); err == nil {
			t.Errorf("parseCategory(%q) error = nil", bad)
		}
	}
}
