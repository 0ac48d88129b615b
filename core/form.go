package core

import (
	"fmt"
)

// EventKind names a user interaction with the permissions form.
type EventKind string

const (
	EventSelect EventKind = "select" // Value: user id, empty clears the selection
	EventFilter EventKind = "filter" // Value: search query
	EventAdd    EventKind = "add"
	EventDelete EventKind = "delete" // RowKey
	EventToggle EventKind = "toggle" // RowKey, Flag, Checked
	EventSubmit EventKind = "submit"
)

// An Event is delivered to the form, not to the row which caused it. Rows are addressed by RowKey.
type Event struct {
	Kind    EventKind
	RowKey  int
	Flag    Flag
	Checked bool
	Value   string
}

// FolderPermissionsForm owns the state of the permissions page of one folder.
type FolderPermissionsForm struct {
	FolderID  string
	Directory *UserDirectory
	Picker    *UserPicker
	Table     *PermissionTable

	serializer  FormSerializer
	hiddenField string
	handlers    map[EventKind]func(Event) error
}

// NewFolderPermissionsForm parses the embedded users payload and loads the stored permissions as initial rows.
// The picker offers every user who has no row, in payload order.
// Stored permissions of users which are not in the directory, and repeated users, are skipped.
func NewFolderPermissionsForm(folderID string, usersPayload []byte, stored []Permission) (*FolderPermissionsForm, error) {

	directory, err := ParseUserDirectory(usersPayload)
	if err != nil {
		return nil, err
	}

	var f = &FolderPermissionsForm{
		FolderID:   folderID,
		Directory:  directory,
		Picker:     NewUserPicker(directory.Users()),
		serializer: FormSerializer{FolderID: folderID},
	}
	f.Table = NewPermissionTable(folderID, directory, f.Picker)

	for _, p := range stored {
		f.Table.load(p)
	}

	f.handlers = map[EventKind]func(Event) error{
		EventSelect: f.onSelect,
		EventFilter: f.onFilter,
		EventAdd:    f.onAdd,
		EventDelete: f.onDelete,
		EventToggle: f.onToggle,
		EventSubmit: f.onSubmit,
	}

	return f, nil
}

// Dispatch runs the handler of the event kind to completion.
func (f *FolderPermissionsForm) Dispatch(ev Event) error {
	handler, ok := f.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("unknown event: %q", ev.Kind)
	}
	return handler(ev)
}

func (f *FolderPermissionsForm) onSelect(ev Event) error {
	f.Picker.Select(ev.Value)
	return nil
}

func (f *FolderPermissionsForm) onFilter(ev Event) error {
	f.Picker.Filter(ev.Value)
	return nil
}

func (f *FolderPermissionsForm) onAdd(Event) error {
	f.Table.Add()
	return nil
}

func (f *FolderPermissionsForm) onDelete(ev Event) error {
	f.Table.DeleteRow(ev.RowKey)
	return nil
}

func (f *FolderPermissionsForm) onToggle(ev Event) error {
	_, err := f.Table.Toggle(ev.RowKey, ev.Flag, ev.Checked)
	return err
}

func (f *FolderPermissionsForm) onSubmit(Event) error {
	_, err := f.Submit()
	return err
}

// Submit serializes the table into the hidden field and returns its new value.
func (f *FolderPermissionsForm) Submit() (string, error) {
	value, err := f.serializer.Serialize(f.Table)
	if err != nil {
		return "", err
	}
	f.hiddenField = value
	return value, nil
}

// HiddenField returns the value written by the last Submit.
func (f *FolderPermissionsForm) HiddenField() string {
	return f.hiddenField
}

// Records returns the current permission records without touching the hidden field.
func (f *FolderPermissionsForm) Records() []Permission {
	return f.serializer.Records(f.Table)
}

// UsersPayload returns the JSON blob to embed into the page.
func (f *FolderPermissionsForm) UsersPayload() (string, error) {
	data, err := f.Directory.Payload()
	return string(data), err
}
