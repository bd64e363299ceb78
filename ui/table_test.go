package ui

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteContents(t *testing.T) {
	tv := &TableView{}
	tv.SetContents([]string{"id", "name"}, [][]string{
		{"1", "widget"},
		{"22", "gizmo"},
	})
	require.Equal(t, []int{2, 6}, tv.Widths)

	buf := &bytes.Buffer{}
	require.NoError(t, tv.WriteContents(buf))
	require.Equal(t, ""+
		"  id   name   \n"+
		"> 1    widget \n"+
		"  22   gizmo  \n", buf.String())
}

func TestWidthCapped(t *testing.T) {
	tv := &TableView{}
	long := bytes.Repeat([]byte("x"), MaxColumnWidth+10)
	tv.SetContents([]string{"id"}, [][]string{{string(long)}})
	require.Equal(t, []int{MaxColumnWidth}, tv.Widths)
}

func TestMove(t *testing.T) {
	cases := []struct {
		name   string
		moves  []Direction
		row    int
		column int
	}{
		{
			name: "start",
		},
		{
			name:   "down and right",
			moves:  []Direction{DirectionDown, DirectionRight},
			row:    1,
			column: 1,
		},
		{
			name:  "clamped at the top",
			moves: []Direction{DirectionUp, DirectionLeft},
		},
		{
			name:   "clamped at the bottom",
			moves:  []Direction{DirectionDown, DirectionDown, DirectionDown, DirectionRight, DirectionRight},
			row:    2,
			column: 1,
		},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			tv := &TableView{}
			tv.SetContents([]string{"id", "name"}, [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}})
			for _, d := range tc.moves {
				tv.Move(d)
			}
			row, column := tv.GetSelected()
			require.Equal(t, tc.row, row)
			require.Equal(t, tc.column, column)
		})
	}
}

func TestSetContentsClampsCursor(t *testing.T) {
	tv := &TableView{}
	tv.SetContents([]string{"id"}, [][]string{{"1"}, {"2"}, {"3"}})
	tv.Move(DirectionDown)
	tv.Move(DirectionDown)
	tv.SetContents([]string{"id"}, [][]string{{"1"}})
	row, _ := tv.GetSelected()
	require.Equal(t, 0, row)
}
