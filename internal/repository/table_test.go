package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64
	Name string
}

func insertRow(t *testing.T, tbl *Table[row], name string) row {
	t.Helper()
	r, err := tbl.Insert(func(id int64) row { return row{ID: id, Name: name} }, nil)
	require.NoError(t, err)
	return r
}

func TestTableIDsStartAtOneAndIncrease(t *testing.T) {
	tbl := NewTable[row]()

	first := insertRow(t, tbl, "a")
	second := insertRow(t, tbl, "b")

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestTableIDsNotReusedAfterDelete(t *testing.T) {
	tbl := NewTable[row]()

	insertRow(t, tbl, "a")
	second := insertRow(t, tbl, "b")
	require.True(t, tbl.Delete(second.ID))

	third := insertRow(t, tbl, "c")
	assert.Equal(t, int64(3), third.ID)
}

func TestTableListKeepsInsertionOrder(t *testing.T) {
	tbl := NewTable[row]()

	insertRow(t, tbl, "a")
	b := insertRow(t, tbl, "b")
	insertRow(t, tbl, "c")
	require.True(t, tbl.Delete(b.ID))
	insertRow(t, tbl, "d")

	names := make([]string, 0, tbl.Len())
	for _, r := range tbl.List() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "c", "d"}, names)
}

func TestTableInsertConflict(t *testing.T) {
	tbl := NewTable[row]()
	insertRow(t, tbl, "taken")

	_, err := tbl.Insert(
		func(id int64) row { return row{ID: id, Name: "taken"} },
		func(existing row) bool { return existing.Name == "taken" },
	)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableUpdateConflictSkipsSelf(t *testing.T) {
	tbl := NewTable[row]()
	a := insertRow(t, tbl, "a")
	insertRow(t, tbl, "b")

	// Rewriting a row with its own value is not a conflict.
	updated, err := tbl.Update(a.ID,
		func(r row) row { return r },
		func(other row) bool { return other.Name == "a" },
	)
	require.NoError(t, err)
	assert.Equal(t, "a", updated.Name)

	// Taking another row's value is.
	_, err = tbl.Update(a.ID,
		func(r row) row { r.Name = "b"; return r },
		func(other row) bool { return other.Name == "b" },
	)
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := tbl.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestTableDeleteTwice(t *testing.T) {
	tbl := NewTable[row]()
	r := insertRow(t, tbl, "a")

	assert.True(t, tbl.Delete(r.ID))
	assert.False(t, tbl.Delete(r.ID))
}

func TestTableGetMissing(t *testing.T) {
	tbl := NewTable[row]()

	_, err := tbl.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}
