package application

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/condenser/internal/core"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func(e *core.Engine) error
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

// buildMenuTree builds the settings menu for a grid with the given columns.
func buildMenuTree(columns []string) *Menu {
	root := &Menu{
		Title: "Settings",
		Items: []MenuItem{
			{Label: "Sort ->", Submenu: loadSortMenu(columns)},
			{Label: "Category ->", Submenu: loadCategoryMenu(columns)},
			{Label: "Search columns ->", Submenu: loadSearchMenu(columns)},
			{Label: "Page size ->", Submenu: loadPageSizeMenu()},
			{Label: "Back"},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadSortMenu(columns []string) *Menu {
	items := make([]MenuItem, 0, len(columns)+2)
	for i, name := range columns {
		col := i
		items = append(items, MenuItem{
			Label: "By " + name,
			Action: func(e *core.Engine) error {
				return e.SetSort(col, e.Config().SortDirection)
			},
		})
	}
	items = append(items,
		MenuItem{Label: "No sort", Action: func(e *core.Engine) error {
			e.ClearSort()
			return nil
		}},
		MenuItem{Label: "Back"},
	)
	return &Menu{Title: "Sort", Items: items}
}

func loadCategoryMenu(columns []string) *Menu {
	items := make([]MenuItem, 0, 2*len(columns)+2)
	for i, name := range columns {
		col := i
		for _, state := range []bool{true, false} {
			value := state
			items = append(items, MenuItem{
				Label: fmt.Sprintf("%s is %t", name, value),
				Action: func(e *core.Engine) error {
					return e.SetCategorical(&core.Categorical{Column: col, Value: value})
				},
			})
		}
	}
	items = append(items,
		MenuItem{Label: "Clear", Action: func(e *core.Engine) error {
			return e.SetCategorical(nil)
		}},
		MenuItem{Label: "Back"},
	)
	return &Menu{Title: "Category", Items: items}
}

func loadSearchMenu(columns []string) *Menu {
	all := make([]int, len(columns))
	for i := range all {
		all[i] = i
	}

	items := []MenuItem{{
		Label: "All columns",
		Action: func(e *core.Engine) error {
			return e.SetFilterColumns(all...)
		},
	}}
	for i, name := range columns {
		col := i
		items = append(items, MenuItem{
			Label: "Only " + name,
			Action: func(e *core.Engine) error {
				return e.SetFilterColumns(col)
			},
		})
	}
	items = append(items, MenuItem{Label: "Back"})
	return &Menu{Title: "Search columns", Items: items}
}

func loadPageSizeMenu() *Menu {
	var items []MenuItem
	for _, n := range []int{5, 10, 25, 50} {
		size := n
		items = append(items, MenuItem{
			Label: strconv.Itoa(size) + " rows",
			Action: func(e *core.Engine) error {
				return e.SetPageSize(size)
			},
		})
	}
	items = append(items, MenuItem{Label: "Back"})
	return &Menu{Title: "Page size", Items: items}
}
