// Package application is the terminal front end for the grid, built on
// bubbletea. It drives a core.Engine the same way the web server does:
// pipeline changes re-query, selection changes re-render the current page.
package application

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/condenser/internal/core"
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeMenu
)

// headerBox receives the engine's select-all state. It is shared by pointer
// so copies of Model see the same value.
type headerBox struct {
	checked bool
}

func (h *headerBox) SetChecked(checked bool) {
	h.checked = checked
}

// Model is the bubbletea model for one grid.
type Model struct {
	title   string
	engine  *core.Engine
	header  *headerBox
	columns []string

	rows   []core.PageRow
	cursor int
	mode   mode

	filter textinput.Model

	menu       *Menu
	root       *Menu
	menuCursor int

	status string
	width  int
}

// New builds a Model over rows and runs the first query. Unless the options
// say otherwise the text filter searches every column.
func New(title string, rows [][]string, columns []string, opts ...core.Option) (Model, error) {
	header := &headerBox{}
	engine := core.NewEngine(rows, header, opts...)

	names := core.ColumnNames(columns, engine.Width())
	all := make([]int, len(names))
	for i := range all {
		all[i] = i
	}
	if err := engine.SetFilterColumns(all...); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 100
	ti.Width = 30

	m := Model{
		title:   title,
		engine:  engine,
		header:  header,
		columns: names,
		filter:  ti,
		root:    buildMenuTree(names),
	}
	if err := m.requery(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Engine exposes the underlying engine, mainly for tests and callers that
// want to read the final state after the program exits.
func (m Model) Engine() *core.Engine {
	return m.engine
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeMenu:
			return m.updateMenu(msg), nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		if m.cursor < len(m.rows) {
			m.apply(m.engine.ToggleOne(m.rows[m.cursor].ID))
		}

	case key.Matches(msg, keys.ToggleAll):
		m.apply(m.engine.ToggleAll(!m.header.checked))

	case key.Matches(msg, keys.Next):
		m.engine.Next()
		m.apply(m.requery())

	case key.Matches(msg, keys.Prev):
		m.engine.Prev()
		m.apply(m.requery())

	case key.Matches(msg, keys.Sort):
		m.apply(m.cycleSort())

	case key.Matches(msg, keys.Reverse):
		dir := core.SortDesc
		if m.engine.Config().SortDirection == core.SortDesc {
			dir = core.SortAsc
		}
		if err := m.engine.SetSortDirection(dir); err != nil {
			m.apply(err)
			break
		}
		m.apply(m.requery())

	case key.Matches(msg, keys.Filter):
		m.mode = modeFilter
		m.filter.SetValue(m.engine.Config().Filter)
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, keys.Delete):
		n, err := m.engine.DeleteSelected()
		if err != nil {
			m.apply(err)
			break
		}
		m.apply(m.requery())
		if m.status == "" {
			m.status = fmt.Sprintf("deleted %d rows", n)
		}

	case key.Matches(msg, keys.Menu):
		m.mode = modeMenu
		m.menu = m.root
		m.menuCursor = 0
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.filter.Blur()
		m.engine.SetFilter(m.filter.Value())
		m.engine.SetPage(0)
		m.apply(m.requery())
		return m, nil

	case tea.KeyEsc:
		m.mode = modeNormal
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) Model {
	switch {
	case msg.Type == tea.KeyEsc || key.Matches(msg, keys.Quit):
		m.mode = modeNormal

	case key.Matches(msg, keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.menuCursor < len(m.menu.Items)-1 {
			m.menuCursor++
		}

	case msg.Type == tea.KeyEnter:
		item := m.menu.Items[m.menuCursor]
		switch {
		case item.Action != nil:
			m.mode = modeNormal
			if err := item.Action(m.engine); err != nil {
				m.apply(err)
				break
			}
			m.engine.SetPage(0)
			m.apply(m.requery())
		case item.Submenu != nil:
			m.menu = item.Submenu
			m.menuCursor = 0
		default:
			// "Back" from the root menu
			m.mode = modeNormal
		}
	}

	return m
}

// cycleSort moves the sort to the next column, wrapping to unsorted.
func (m *Model) cycleSort() error {
	cfg := m.engine.Config()
	next := 0
	if cfg.SortColumn != nil {
		next = *cfg.SortColumn + 1
	}
	if next >= len(m.columns) {
		m.engine.ClearSort()
		return m.requery()
	}
	if err := m.engine.SetSort(next, cfg.SortDirection); err != nil {
		return err
	}
	return m.requery()
}

// requery runs the pipeline and refreshes the visible rows.
func (m *Model) requery() error {
	if _, err := m.engine.Query(); err != nil {
		return err
	}
	m.refresh()
	return nil
}

// refresh reloads the current page without re-querying.
func (m *Model) refresh() {
	m.rows = m.engine.CurrentPage()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// apply records err in the status line, then refreshes the page.
func (m *Model) apply(err error) {
	if err != nil {
		m.status = core.FormatUserError(err)
		if errors.Is(err, core.ErrSelectionDisabled) {
			m.status = "selection is disabled for this table"
		}
	}
	m.refresh()
}
