// Command condense filters, sorts and pages a CSV file from the terminal.
package main

import (
	"io"
	"os"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/JonMunkholm/condenser/internal/application"
	"github.com/JonMunkholm/condenser/internal/core"
	"github.com/JonMunkholm/condenser/internal/logging"
	"github.com/JonMunkholm/condenser/internal/source"
)

var (
	app = kingpin.New("condense", "Filter, sort and page tabular data.")

	logLevel = app.Flag("log-level", "Minimum log level.").
			Envar("LOG_LEVEL").Default("warn").Enum("debug", "info", "warn", "error")
	noHeader = app.Flag("no-header", "Treat the first CSV record as data.").Bool()

	printCmd      = app.Command("print", "Print one page as a table.")
	printFile     = printCmd.Flag("file", "CSV file to read.").Short('f').Required().ExistingFile()
	printFilter   = printCmd.Flag("filter", "Keep rows whose search columns contain this text.").String()
	printColumns  = printCmd.Flag("columns", "Columns searched by --filter (default all).").Ints()
	printSort     = printCmd.Flag("sort", "Sort by this column (-1 for none).").Default("-1").Int()
	printDesc     = printCmd.Flag("desc", "Sort descending.").Bool()
	printCategory = printCmd.Flag("category", "Categorical filter as column=true|false.").String()
	printPageNum  = printCmd.Flag("page", "Zero-based page to print.").Default("0").Int()
	printPageSize = printCmd.Flag("page-size", "Rows per page.").Default("5").Int()

	tuiCmd      = app.Command("tui", "Browse the file interactively.")
	tuiFile     = tuiCmd.Flag("file", "CSV file to read.").Short('f').Required().ExistingFile()
	tuiLogFile  = tuiCmd.Flag("log-file", "Write logs here instead of discarding them.").String()
	tuiPageSize = tuiCmd.Flag("page-size", "Rows per page.").Default("10").Int()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case printCmd.FullCommand():
		logging.SetupWriter(os.Stderr, *logLevel, "text")
		kingpin.FatalIfError(runPrint(), "print")

	case tuiCmd.FullCommand():
		kingpin.FatalIfError(runTUI(), "tui")
	}
}

func runPrint() error {
	table, err := source.LoadCSVFile(*printFile, source.CSVOptions{HasHeader: !*noHeader})
	if err != nil {
		return userError(err)
	}

	opts := printOptions{
		Filter:   *printFilter,
		Columns:  *printColumns,
		Desc:     *printDesc,
		Category: *printCategory,
		Page:     *printPageNum,
		PageSize: *printPageSize,
	}
	if *printSort >= 0 {
		col := *printSort
		opts.Sort = &col
	}

	return printPage(os.Stdout, table, opts)
}

func runTUI() error {
	if *tuiLogFile != "" {
		f, err := os.OpenFile(*tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logging.SetupWriter(f, *logLevel, "text")
	} else {
		logging.SetupWriter(io.Discard, *logLevel, "text")
	}

	table, err := source.LoadCSVFile(*tuiFile, source.CSVOptions{HasHeader: !*noHeader})
	if err != nil {
		return userError(err)
	}

	m, err := application.New(*tuiFile, table.Rows, table.Header, core.WithPageSize(*tuiPageSize))
	if err != nil {
		return userError(err)
	}
	return application.Run(m)
}
