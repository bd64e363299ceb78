package ui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulmenhaus/tabula/osm"
	"github.com/ulmenhaus/tabula/types"
)

func newMainView(t *testing.T) *MainView {
	mapper, err := osm.NewObjectStoreMapper(filepath.Join(t.TempDir(), "shop.json"))
	require.NoError(t, err)
	db, err := types.NewDatabase("shop")
	require.NoError(t, err)
	mv, err := NewMainView(mapper, db, "")
	require.NoError(t, err)
	return mv
}

func TestNewMainViewUnknownTable(t *testing.T) {
	mapper, err := osm.NewObjectStoreMapper(filepath.Join(t.TempDir(), "shop.json"))
	require.NoError(t, err)
	db, err := types.NewDatabase("shop")
	require.NoError(t, err)
	_, err = NewMainView(mapper, db, "products")
	require.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestSubmit(t *testing.T) {
	mv := newMainView(t)
	require.Equal(t, "", mv.Selected())

	require.NoError(t, mv.Submit(PromptCreateTable, "products: int id, string name, money price"))
	require.Equal(t, "products", mv.Selected())
	require.Equal(t, []string{"id (int)", "name (string)", "price (money)"}, mv.TableView.Header)

	require.NoError(t, mv.Submit(PromptInsert, "1; widget; $2.50"))
	require.NoError(t, mv.Submit(PromptInsert, "2; gizmo; $3"))
	require.Equal(t, [][]string{
		{"1", "widget", "$2.50"},
		{"2", "gizmo", "$3.00"},
	}, mv.TableView.Values)

	require.NoError(t, mv.Submit(PromptUpdate, "2; gadget; $3"))
	require.Equal(t, "gadget", mv.TableView.Values[1][1])

	require.ErrorIs(t, mv.Submit(PromptInsert, "1; widget; $2.50"), types.ErrDuplicateIdentifier)
	require.ErrorIs(t, mv.Submit(PromptUpdate, "9; nothing; $0"), types.ErrRowNotFound)
	require.ErrorIs(t, mv.Submit(PromptInsert, "3; thing"), types.ErrArityMismatch)
	require.ErrorIs(t, mv.Submit(PromptCreateTable, "products: int id"), types.ErrTableExists)
	require.ErrorIs(t, mv.Submit(PromptCreateTable, "no name here"), types.ErrParse)
	require.ErrorIs(t, mv.Submit(PromptCreateTable, "orders: int id, string ID"), types.ErrInvalidSchema)
}

func TestDeleteSelectedAndDropDuplicates(t *testing.T) {
	mv := newMainView(t)
	require.NoError(t, mv.Submit(PromptCreateTable, "notes: int id, string body"))
	for _, line := range []string{"1; hello", "2; hello", "3; bye"} {
		require.NoError(t, mv.Submit(PromptInsert, line))
	}

	require.NoError(t, mv.DropDuplicates())
	require.Equal(t, [][]string{{"1", "hello"}, {"3", "bye"}}, mv.TableView.Values)

	mv.TableView.Move(DirectionDown)
	require.NoError(t, mv.DeleteSelected())
	require.Equal(t, [][]string{{"1", "hello"}}, mv.TableView.Values)

	require.NoError(t, mv.DeleteSelected())
	require.Empty(t, mv.TableView.Values)
	require.NoError(t, mv.DeleteSelected())
}

func TestNextTable(t *testing.T) {
	mv := newMainView(t)
	mv.NextTable()
	require.Equal(t, "", mv.Selected())

	require.NoError(t, mv.Submit(PromptCreateTable, "a: int id"))
	require.NoError(t, mv.Submit(PromptCreateTable, "b: string id"))
	require.Equal(t, "b", mv.Selected())
	mv.NextTable()
	require.Equal(t, "a", mv.Selected())
	mv.NextTable()
	require.Equal(t, "b", mv.Selected())
}

func TestPromptExitShowsAlert(t *testing.T) {
	mv := newMainView(t)
	mv.action = PromptCreateTable
	mv.promptExit("broken", true, nil)
	require.Equal(t, MainViewModeAlert, mv.Mode)

	mv.promptExit("", false, nil)
	require.Equal(t, MainViewModeTable, mv.Mode)

	mv.startPrompt(PromptInsert)
	require.Equal(t, MainViewModeAlert, mv.Mode)
}
