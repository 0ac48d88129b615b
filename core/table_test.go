package core

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(users []User) (*PermissionTable, *UserPicker) {
	var directory = NewUserDirectory(users)
	var picker = NewUserPicker(directory.Users())
	return NewPermissionTable("f7", directory, picker), picker
}

func TestPermissionTable_AddAndDelete(t *testing.T) {
	table, picker := newTestTable([]User{{ID: "u1", Name: "Ann", Level: 3, Tech: true}})
	require.Equal(t, []Option{{"u1", "Ann"}}, picker.Options())

	require.True(t, picker.Select("u1"))
	row, ok := table.Add()
	require.True(t, ok)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "Ann", row.Name)
	assert.Equal(t, "Level: 3\nTech", row.Title)
	assert.Equal(t, "u1", row.UserID)
	assert.Equal(t, "f7", row.FolderID)
	assert.Empty(t, row.ID)
	assert.Empty(t, picker.Options())

	assert.True(t, table.DeleteRow(row.Key))
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []Option{{"u1", "Ann"}}, picker.Options())
}

func TestPermissionTable_AddWithoutSelection(t *testing.T) {
	table, picker := newTestTable(testUsers())

	_, ok := table.Add()
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Len(t, picker.Options(), 3)
}

func TestPermissionTable_AddUnknownUser(t *testing.T) {
	var directory = NewUserDirectory(testUsers()[:1])
	var picker = NewUserPicker(testUsers()) // offers a user the directory doesn't know
	var table = NewPermissionTable("f7", directory, picker)

	require.True(t, picker.Select("u2"))
	_, ok := table.Add()
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.True(t, picker.Contains("u2"))
}

func TestPermissionTable_NoDoubleAdd(t *testing.T) {
	table, picker := newTestTable(testUsers())

	require.True(t, picker.Select("u1"))
	_, ok := table.Add()
	require.True(t, ok)

	assert.False(t, picker.Select("u1"))
	_, ok = table.Add()
	assert.False(t, ok)
	assert.Equal(t, []string{"u1"}, table.UserIDs())
}

func TestPermissionTable_AppendOrderAndKeys(t *testing.T) {
	table, picker := newTestTable(testUsers())

	for _, id := range []string{"u3", "u1", "u2"} {
		require.True(t, picker.Select(id))
		_, ok := table.Add()
		require.True(t, ok)
	}
	assert.Equal(t, []string{"u3", "u1", "u2"}, table.UserIDs())

	var first = table.Rows()[0].Key
	require.True(t, table.DeleteRow(first))
	assert.False(t, table.DeleteRow(first))

	require.True(t, picker.Select("u3"))
	row, ok := table.Add()
	require.True(t, ok)
	assert.NotEqual(t, first, row.Key)
	assert.Equal(t, []string{"u1", "u2", "u3"}, table.UserIDs())
}

func TestPermissionTable_DeleteRestoresLabel(t *testing.T) {
	table, picker := newTestTable(testUsers())

	require.True(t, picker.Select("u2"))
	row, _ := table.Add()
	require.True(t, table.DeleteRow(row.Key))

	var options = picker.Options()
	assert.Equal(t, Option{"u2", "Bob"}, options[len(options)-1])
	assert.Len(t, options, 3)
}

func TestPermissionTable_Toggle(t *testing.T) {
	table, picker := newTestTable(testUsers())
	require.True(t, picker.Select("u1"))
	row, _ := table.Add()

	ok, err := table.Toggle(row.Key, Write, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, row.Write)
	assert.False(t, row.Read)

	_, err = table.Toggle(row.Key, Flag("admin"), true)
	assert.ErrorIs(t, err, ErrInvalidFlag)

	ok, err = table.Toggle(row.Key+1, Read, true)
	assert.NoError(t, err)
	assert.False(t, ok)
}

// The user ids of table and picker stay disjoint and their union stays constant.
func TestPermissionTable_PartitionInvariant(t *testing.T) {
	var users = []User{
		{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bob"}, {ID: "c", Name: "Cid"},
		{ID: "d", Name: "Dan"}, {ID: "e", Name: "Eve"},
	}
	var all = []string{"a", "b", "c", "d", "e"}

	var rnd = rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {

		table, picker := newTestTable(users)

		for step := 0; step < 40; step++ {

			if options := picker.Options(); len(options) > 0 && rnd.Intn(2) == 0 {
				picker.Select(options[rnd.Intn(len(options))].Value)
				table.Add()
			} else if rows := table.Rows(); len(rows) > 0 {
				table.DeleteRow(rows[rnd.Intn(len(rows))].Key)
			}

			var inTable = table.UserIDs()
			var inPicker = []string{}
			for _, o := range picker.Options() {
				inPicker = append(inPicker, o.Value)
			}

			var union = append(append([]string{}, inTable...), inPicker...)
			sort.Strings(union)
			require.Equal(t, all, union, "run %d step %d", run, step) // equal sorted slices imply disjointness
		}
	}
}
