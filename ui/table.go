package ui

import (
	"io"
	"strings"
	"unicode/utf8"
)

// MaxColumnWidth caps the width of any column of a TableView
const MaxColumnWidth = 30

// A Direction is a direction the cursor of a TableView can move in
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// A TableView is a gocui object for vizualizing tabular data
type TableView struct {
	Header []string
	Values [][]string
	Widths []int
	row    int
	column int
}

// SetContents replaces the header and values and sizes each column to
// fit its widest cell
func (tv *TableView) SetContents(header []string, values [][]string) {
	tv.Header = header
	tv.Values = values
	tv.Widths = make([]int, len(header))
	for j, h := range header {
		tv.Widths[j] = utf8.RuneCountInString(h)
	}
	for _, row := range values {
		for j, val := range row {
			if j < len(tv.Widths) && utf8.RuneCountInString(val) > tv.Widths[j] {
				tv.Widths[j] = utf8.RuneCountInString(val)
			}
		}
	}
	for j := range tv.Widths {
		if tv.Widths[j] > MaxColumnWidth {
			tv.Widths[j] = MaxColumnWidth
		}
	}
	tv.clamp()
}

// Move moves the cursor one cell in the given direction
func (tv *TableView) Move(d Direction) {
	switch d {
	case DirectionUp:
		tv.row--
	case DirectionDown:
		tv.row++
	case DirectionLeft:
		tv.column--
	case DirectionRight:
		tv.column++
	}
	tv.clamp()
}

func (tv *TableView) clamp() {
	if tv.row >= len(tv.Values) {
		tv.row = len(tv.Values) - 1
	}
	if tv.row < 0 {
		tv.row = 0
	}
	if tv.column >= len(tv.Header) {
		tv.column = len(tv.Header) - 1
	}
	if tv.column < 0 {
		tv.column = 0
	}
}

// WriteContents writes the contents of the table to a gocui view
func (tv *TableView) WriteContents(v io.Writer) error {
	var content strings.Builder
	for j, val := range tv.Header {
		content.WriteString("  " + pad(val, tv.Widths[j]) + " ")
	}
	content.WriteString("\n")
	for i, row := range tv.Values {
		for j, val := range row {
			if j >= len(tv.Widths) {
				break
			}
			if i == tv.row && j == tv.column {
				content.WriteString("> " + pad(val, tv.Widths[j]) + " ")
			} else {
				content.WriteString("  " + pad(val, tv.Widths[j]) + " ")
			}
		}
		content.WriteString("\n")
	}
	_, err := io.WriteString(v, content.String())
	return err
}

// GetSelected returns the selected row and column
func (tv *TableView) GetSelected() (int, int) {
	return tv.row, tv.column
}

func pad(val string, width int) string {
	runes := []rune(val)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return val + strings.Repeat(" ", width-len(runes))
}
