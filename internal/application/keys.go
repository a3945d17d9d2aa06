package application

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Next      key.Binding
	Prev      key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Filter    key.Binding
	Delete    key.Binding
	Menu      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	Next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
	Prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
	Reverse:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
	Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Next, k.Prev, k.Sort, k.Reverse, k.Filter, k.Delete, k.Menu, k.Quit}
}
