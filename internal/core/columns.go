package core

import "strconv"

// ColumnNames fits names to width, filling missing or blank names with
// "Column N". A negative width (empty RowSet) keeps every given name.
func ColumnNames(names []string, width int) []string {
	if width < 0 {
		width = len(names)
	}
	out := make([]string, width)
	for i := range out {
		if i < len(names) && names[i] != "" {
			out[i] = names[i]
		} else {
			out[i] = "Column " + strconv.Itoa(i+1)
		}
	}
	return out
}
