package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/JonMunkholm/condenser/internal/core"
	"github.com/JonMunkholm/condenser/internal/source"
)

type printOptions struct {
	Filter   string
	Columns  []int
	Sort     *int
	Desc     bool
	Category string // "col=true" or "col=false"
	Page     int
	PageSize int
}

// printPage runs one query over table and renders the page with tablewriter.
func printPage(out io.Writer, table *source.Table, opts printOptions) error {
	engine := core.NewEngine(table.Rows, nil, core.WithoutSelection())

	cfg := core.PipelineConfig{
		Filter:        opts.Filter,
		FilterColumns: opts.Columns,
		SortColumn:    opts.Sort,
		SortDirection: core.SortAsc,
		Page:          opts.Page,
		PageSize:      opts.PageSize,
	}
	if opts.Desc {
		cfg.SortDirection = core.SortDesc
	}
	if len(cfg.FilterColumns) == 0 {
		for i := 0; i < engine.Width(); i++ {
			cfg.FilterColumns = append(cfg.FilterColumns, i)
		}
	}
	if opts.Category != "" {
		cat, err := parseCategory(opts.Category)
		if err != nil {
			return err
		}
		cfg.Categorical = cat
	}

	if err := engine.SetConfig(cfg); err != nil {
		return userError(err)
	}
	rows, err := engine.Query()
	if err != nil {
		return userError(err)
	}

	tw := tablewriter.NewWriter(out)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if len(table.Header) > 0 {
		tw.SetHeader(core.ColumnNames(table.Header, engine.Width()))
	}
	for _, r := range rows {
		tw.Append(r.Cells)
	}
	tw.Render()

	_, err = fmt.Fprintf(out, "page %d/%d (%d rows)\n", engine.Page()+1, engine.PageCount(), engine.VisibleCount())
	return err
}

// parseCategory reads "col=true" or "col=false".
func parseCategory(s string) (*core.Categorical, error) {
	colText, valueText, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("category %q: want column=true|false", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", s, err)
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueText))
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", s, err)
	}
	return &core.Categorical{Column: col, Value: value}, nil
}

// userError keeps err wrapped while leading with its user-facing message.
func userError(err error) error {
	return fmt.Errorf("%s: %w", core.FormatUserError(err), err)
}
