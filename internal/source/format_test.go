package source

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestFormatCell(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "fig", "fig"},
		{"bytes", []byte("raw"), "raw"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"date only time", day, "2024-03-09"},
		{"timestamp", stamp, "2024-03-09T14:30:00Z"},
		{"zero time", time.Time{}, ""},
		{"numeric integer", pgtype.Numeric{Int: big.NewInt(1200), Exp: -2, Valid: true}, "12"},
		{"numeric fraction", pgtype.Numeric{Int: big.NewInt(1234), Exp: -2, Valid: true}, "12.34"},
		{"numeric null", pgtype.Numeric{}, ""},
		{"date", pgtype.Date{Time: day, Valid: true}, "2024-03-09"},
		{"date null", pgtype.Date{}, ""},
		{"text", pgtype.Text{String: "x", Valid: true}, "x"},
		{"text null", pgtype.Text{}, ""},
		{"pg bool", pgtype.Bool{Bool: true, Valid: true}, "true"},
		{"pg bool null", pgtype.Bool{}, ""},
		{
			"uuid bytes",
			[16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88},
			"12345678-9abc-def0-1122-334455667788",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCell(tt.in); got != tt.want {
				t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelectStatement(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []string
		want    string
	}{
		{"all columns", "fruit", nil, `SELECT * FROM "fruit"`},
		{"named columns", "fruit", []string{"name", "qty"}, `SELECT "name", "qty" FROM "fruit"`},
		{"schema qualified", "shop.fruit", nil, `SELECT * FROM "shop"."fruit"`},
		{"quote escaped", `we"ird`, nil, `SELECT * FROM "we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectStatement(tt.table, tt.columns)
			if err != nil {
				t.Fatalf("selectStatement() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("selectStatement() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := selectStatement("  ", nil); err == nil {
		t.Error("selectStatement(blank) error = nil")
	}
}
