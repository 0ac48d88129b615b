package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annPayload = `{"users":[{"id":"u1","name":"Ann","level":3,"admin":false,"tech":true}]}`

func TestFolderPermissionsForm_AnnScenario(t *testing.T) {
	form, err := NewFolderPermissionsForm("f7", []byte(annPayload), nil)
	require.NoError(t, err)
	assert.Equal(t, []Option{{"u1", "Ann"}}, form.Picker.Options())

	require.NoError(t, form.Dispatch(Event{Kind: EventSelect, Value: "u1"}))
	require.NoError(t, form.Dispatch(Event{Kind: EventAdd}))

	var rows = form.Table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].Name)
	assert.Equal(t, "Level: 3\nTech", rows[0].Title)
	assert.Empty(t, form.Picker.Options())

	require.NoError(t, form.Dispatch(Event{Kind: EventDelete, RowKey: rows[0].Key}))
	assert.Equal(t, 0, form.Table.Len())
	assert.Equal(t, []Option{{"u1", "Ann"}}, form.Picker.Options())
}

func TestFolderPermissionsForm_AddWithoutSelection(t *testing.T) {
	form, err := NewFolderPermissionsForm("f7", []byte(annPayload), nil)
	require.NoError(t, err)

	require.NoError(t, form.Dispatch(Event{Kind: EventAdd}))
	assert.Equal(t, 0, form.Table.Len())
	assert.Equal(t, []Option{{"u1", "Ann"}}, form.Picker.Options())
}

func TestFolderPermissionsForm_Submit(t *testing.T) {
	form, err := NewFolderPermissionsForm("f7", []byte(`{"users":[{"id":"u1","name":"Ann"},{"id":"u2","name":"Bob"}]}`), nil)
	require.NoError(t, err)
	assert.Empty(t, form.HiddenField())

	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, form.Dispatch(Event{Kind: EventSelect, Value: id}))
		require.NoError(t, form.Dispatch(Event{Kind: EventAdd}))
	}

	var rows = form.Table.Rows()
	require.NoError(t, form.Dispatch(Event{Kind: EventToggle, RowKey: rows[0].Key, Flag: List, Checked: true}))
	require.NoError(t, form.Dispatch(Event{Kind: EventToggle, RowKey: rows[0].Key, Flag: Read, Checked: true}))
	for _, f := range Flags {
		require.NoError(t, form.Dispatch(Event{Kind: EventToggle, RowKey: rows[1].Key, Flag: f, Checked: true}))
	}

	require.NoError(t, form.Dispatch(Event{Kind: EventSubmit}))
	assert.JSONEq(t, `[
		{"folderId":"f7","userId":"u1","list":true,"read":true,"write":false,"create":false,"delete":false},
		{"folderId":"f7","userId":"u2","list":true,"read":true,"write":true,"create":true,"delete":true}
	]`, form.HiddenField())
}

func TestFolderPermissionsForm_StoredPermissions(t *testing.T) {
	var payload = `{"users":[{"id":"u1","name":"Ann"},{"id":"u2","name":"Bob"},{"id":"u3","name":"Cid"}]}`
	var stored = []Permission{
		{ID: "p2", FolderID: "f7", UserID: "u2", Read: true},
		{ID: "px", FolderID: "f7", UserID: "gone", Read: true},
		{ID: "p2b", FolderID: "f7", UserID: "u2", Delete: true},
	}

	form, err := NewFolderPermissionsForm("f7", []byte(payload), stored)
	require.NoError(t, err)

	assert.Equal(t, []string{"u2"}, form.Table.UserIDs())
	assert.Equal(t, []Option{{"u1", "Ann"}, {"u3", "Cid"}}, form.Picker.Options())

	var records = form.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "p2", records[0].ID)
	assert.True(t, records[0].Read)
	assert.False(t, records[0].Delete)
}

func TestFolderPermissionsForm_Errors(t *testing.T) {
	_, err := NewFolderPermissionsForm("f7", []byte(`{"users":`), nil)
	assert.ErrorIs(t, err, ErrMalformedDirectory)

	form, err := NewFolderPermissionsForm("f7", []byte(annPayload), nil)
	require.NoError(t, err)
	assert.Error(t, form.Dispatch(Event{Kind: "explode"}))
}

func TestFolderPermissionsForm_UsersPayload(t *testing.T) {
	form, err := NewFolderPermissionsForm("f7", []byte(annPayload), nil)
	require.NoError(t, err)

	payload, err := form.UsersPayload()
	require.NoError(t, err)
	assert.JSONEq(t, annPayload, payload)
}

func TestFolderIDFromPath(t *testing.T) {
	assert.Equal(t, "f7", FolderIDFromPath("/folder/permissions/f7"))
	assert.Equal(t, "f7", FolderIDFromPath("f7"))
	assert.Equal(t, "", FolderIDFromPath("/folder/permissions/"))
}
