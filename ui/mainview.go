package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jroimartin/gocui"
	"github.com/ulmenhaus/tabula/osm"
	"github.com/ulmenhaus/tabula/parse"
	"github.com/ulmenhaus/tabula/types"
)

// MainViewMode is the current mode of the MainView.
// It determines which subview processes inputs.
type MainViewMode int

const (
	// MainViewModeTable is the mode for standard table navigation
	MainViewModeTable MainViewMode = iota
	// MainViewModePrompt is for when the user is being
	// prompted to enter information
	MainViewModePrompt
	// MainViewModeAlert is for when the user is being
	// shown an alert in the prompt window
	MainViewModeAlert
)

// A PromptAction is what the contents of the prompt are used for once
// the user submits them
type PromptAction int

const (
	PromptInsert PromptAction = iota
	PromptUpdate
	PromptCreateTable
)

const (
	tablesViewName = "tables"
	tableViewName  = "table"
	promptViewName = "prompt"

	tablesPaneWidth = 20
)

var helpLine = "a:add u:update d:delete D:drop duplicates t:new table s:save tab:next table ^C:quit  types: " + func() string {
	tags := []string{}
	for _, tag := range types.AllTypeTags() {
		tags = append(tags, string(tag))
	}
	return strings.Join(tags, " ")
}()

// A MainView is the overall view of a database: a list of tables, the
// rows of the selected table, and a prompt for editing
type MainView struct {
	OSM *osm.ObjectStoreMapper
	DB  *types.Database

	TableView     *TableView
	PromptHandler *PromptHandler
	Mode          MainViewMode

	selected  string
	action    PromptAction
	switching bool // on when transitioning modes has not yet been acknowleged by Layout
	alert     string
}

// NewMainView returns a MainView over the database starting at the given table.
// If tableName is empty the first table is selected.
func NewMainView(mapper *osm.ObjectStoreMapper, db *types.Database, tableName string) (*MainView, error) {
	mv := &MainView{
		OSM:       mapper,
		DB:        db,
		TableView: &TableView{},
		selected:  tableName,
	}
	mv.PromptHandler = &PromptHandler{Callback: mv.promptExit}
	if mv.selected == "" {
		if names := db.ListTables(); len(names) > 0 {
			mv.selected = names[0]
		}
	} else if _, ok := db.GetTable(mv.selected); !ok {
		return nil, types.NewError(types.KindTableNotFound, tableName, "table does not exist in %s", db.Name())
	}
	mv.updateTableViewContents()
	return mv, nil
}

// Selected returns the name of the selected table
func (mv *MainView) Selected() string {
	return mv.selected
}

// Layout returns the gocui object
func (mv *MainView) Layout(g *gocui.Gui) error {
	switching := mv.switching
	mv.switching = false

	maxX, maxY := g.Size()
	tables, err := g.SetView(tablesViewName, 0, 0, tablesPaneWidth, maxY-3)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	tables.Title = mv.DB.Name()
	tables.Clear()
	mv.writeTables(tables)

	v, err := g.SetView(tableViewName, tablesPaneWidth+1, 0, maxX-1, maxY-3)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Editable = true
		v.Editor = mv
	}
	v.Title = mv.selected
	v.Clear()
	if err := mv.TableView.WriteContents(v); err != nil {
		return err
	}

	prompt, err := g.SetView(promptViewName, 0, maxY-3, maxX-1, maxY-1)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		prompt.Editable = true
		prompt.Editor = mv.PromptHandler
	}
	if switching {
		prompt.Clear()
		prompt.SetCursor(0, 0)
	}
	switch mv.Mode {
	case MainViewModeTable:
		if _, err := g.SetCurrentView(tableViewName); err != nil {
			return err
		}
		g.Cursor = false
		prompt.Title = ""
		prompt.Clear()
		fmt.Fprint(prompt, helpLine)
	case MainViewModeAlert:
		if _, err := g.SetCurrentView(tableViewName); err != nil {
			return err
		}
		g.Cursor = false
		prompt.Title = "error"
		prompt.Clear()
		fmt.Fprint(prompt, mv.alert)
	case MainViewModePrompt:
		if _, err := g.SetCurrentView(promptViewName); err != nil {
			return err
		}
		g.Cursor = true
		prompt.Title = mv.promptTitle()
	}
	return nil
}

func (mv *MainView) writeTables(w io.Writer) {
	for _, name := range mv.DB.ListTables() {
		marker := "  "
		if name == mv.selected {
			marker = "> "
		}
		fmt.Fprintln(w, marker+name)
	}
}

func (mv *MainView) promptTitle() string {
	switch mv.action {
	case PromptInsert:
		return "new row: id; value; ..."
	case PromptUpdate:
		return "updated row: id; value; ..."
	case PromptCreateTable:
		return "new table: name: <type> id, <type> column, ..."
	}
	return ""
}

// switchMode sets the main view's mode to the new mode and sets
// the switching flag so that Layout is aware of the transition
func (mv *MainView) switchMode(new MainViewMode) {
	mv.switching = true
	mv.Mode = new
}

func (mv *MainView) showError(err error) {
	if err != nil {
		mv.alert = err.Error()
		mv.switchMode(MainViewModeAlert)
	}
}

// Edit handles keyboard inputs while in table mode
func (mv *MainView) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	if mv.Mode == MainViewModeAlert {
		mv.switchMode(MainViewModeTable)
	}

	switch key {
	case gocui.KeyArrowRight:
		mv.TableView.Move(DirectionRight)
	case gocui.KeyArrowUp:
		mv.TableView.Move(DirectionUp)
	case gocui.KeyArrowLeft:
		mv.TableView.Move(DirectionLeft)
	case gocui.KeyArrowDown:
		mv.TableView.Move(DirectionDown)
	case gocui.KeyTab:
		mv.NextTable()
	}

	switch ch {
	case 'a':
		mv.startPrompt(PromptInsert)
	case 'u':
		mv.startPrompt(PromptUpdate)
	case 't':
		mv.startPrompt(PromptCreateTable)
	case 'd':
		mv.showError(mv.DeleteSelected())
	case 'D':
		mv.showError(mv.DropDuplicates())
	case 's':
		mv.showError(mv.OSM.Store(mv.DB))
	}
}

func (mv *MainView) startPrompt(action PromptAction) {
	if action != PromptCreateTable && mv.selected == "" {
		mv.showError(fmt.Errorf("no table selected"))
		return
	}
	mv.action = action
	mv.switchMode(MainViewModePrompt)
}

func (mv *MainView) promptExit(contents string, finish bool, err error) {
	mv.switchMode(MainViewModeTable)
	if err != nil {
		mv.showError(err)
		return
	}
	if !finish {
		return
	}
	mv.showError(mv.Submit(mv.action, contents))
}

// Submit applies the submitted prompt contents for the given action
func (mv *MainView) Submit(action PromptAction, contents string) error {
	if action == PromptCreateTable {
		return mv.createTable(contents)
	}
	table, ok := mv.DB.GetTable(mv.selected)
	if !ok {
		return types.NewError(types.KindTableNotFound, mv.selected, "no table selected")
	}
	row, err := parse.Row(table.Schema(), contents)
	if err != nil {
		return err
	}
	switch action {
	case PromptInsert:
		err = table.Insert(row)
	case PromptUpdate:
		err = table.Update(row)
	}
	if err != nil {
		return err
	}
	mv.updateTableViewContents()
	return nil
}

// createTable takes input of the form `name: int id, string title`
func (mv *MainView) createTable(contents string) error {
	parts := strings.SplitN(contents, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return types.NewError(types.KindParse, contents, "expected `name: <type> id, <type> column, ...`")
	}
	name := strings.TrimSpace(parts[0])
	schema, err := parse.Schema(strings.ReplaceAll(parts[1], ",", "\n"))
	if err != nil {
		return err
	}
	table, err := types.NewTable(name, schema)
	if err != nil {
		return err
	}
	if err := mv.DB.AddTable(table); err != nil {
		return err
	}
	mv.selected = name
	mv.updateTableViewContents()
	return nil
}

// DeleteSelected deletes the row under the cursor
func (mv *MainView) DeleteSelected() error {
	table, ok := mv.DB.GetTable(mv.selected)
	if !ok || len(mv.TableView.Values) == 0 {
		return nil
	}
	row, _ := mv.TableView.GetSelected()
	id, err := parse.Identifier(table.Schema(), mv.TableView.Values[row][0])
	if err != nil {
		return err
	}
	if err := table.Delete(id); err != nil {
		return err
	}
	mv.updateTableViewContents()
	return nil
}

// DropDuplicates drops duplicate rows of the selected table
func (mv *MainView) DropDuplicates() error {
	table, ok := mv.DB.GetTable(mv.selected)
	if !ok {
		return nil
	}
	table.DropDuplicates()
	mv.updateTableViewContents()
	return nil
}

// NextTable selects the table after the current one
func (mv *MainView) NextTable() {
	names := mv.DB.ListTables()
	if len(names) == 0 {
		return
	}
	next := 0
	for i, name := range names {
		if name == mv.selected {
			next = (i + 1) % len(names)
		}
	}
	mv.selected = names[next]
	mv.updateTableViewContents()
}

func (mv *MainView) updateTableViewContents() {
	table, ok := mv.DB.GetTable(mv.selected)
	if !ok {
		mv.TableView.SetContents(nil, nil)
		return
	}
	schema := table.Schema()
	header := []string{fmt.Sprintf("%s (%s)", types.IdentifierName, schema.IDType())}
	for _, col := range schema.Columns() {
		header = append(header, fmt.Sprintf("%s (%s)", col.Name, col.Type))
	}
	values := [][]string{}
	for _, row := range table.Rows() {
		formatted := []string{row.ID.Format()}
		for _, v := range row.Values {
			formatted = append(formatted, v.Format())
		}
		values = append(values, formatted)
	}
	mv.TableView.SetContents(header, values)
}
