package core

// A PermissionRow is one user's permissions on the folder of the table.
//
// Key identifies the row within its table. Keys are never reused, so a stale delete or toggle can't hit another row.
type PermissionRow struct {
	Key   int
	Name  string // display name
	Title string // tooltip
	Permission
}

// A PermissionTable holds the permission rows of one folder in insertion order.
//
// The user ids in the table and the user ids in the picker are always disjoint.
type PermissionTable struct {
	folderID  string
	directory *UserDirectory
	picker    *UserPicker
	rows      []*PermissionRow
	nextKey   int
}

func NewPermissionTable(folderID string, directory *UserDirectory, picker *UserPicker) *PermissionTable {
	return &PermissionTable{
		folderID:  folderID,
		directory: directory,
		picker:    picker,
		nextKey:   1,
	}
}

func (t *PermissionTable) FolderID() string {
	return t.folderID
}

func (t *PermissionTable) newRow(u User) *PermissionRow {
	var row = &PermissionRow{
		Key:   t.nextKey,
		Name:  u.Name,
		Title: u.Title(),
		Permission: Permission{
			FolderID: t.folderID,
			UserID:   u.ID,
		},
	}
	t.nextKey++
	t.rows = append(t.rows, row)
	return row
}

// Add appends a row for the user which is selected in the picker and removes the user from the picker.
// Without a selection, or if the selected user is not in the directory, it does nothing.
func (t *PermissionTable) Add() (*PermissionRow, bool) {

	userID, ok := t.picker.Selected()
	if !ok {
		return nil, false
	}

	u, ok := t.directory.FindUser(userID)
	if !ok {
		return nil, false
	}

	var row = t.newRow(u)
	t.picker.RemoveSelected()
	return row, true
}

// load appends a row for a stored permission. The user must be in the directory and must not have a row yet.
// The user is removed from the picker.
func (t *PermissionTable) load(p Permission) (*PermissionRow, bool) {

	u, ok := t.directory.FindUser(p.UserID)
	if !ok {
		return nil, false
	}

	if t.hasUser(u.ID) {
		return nil, false
	}

	var row = t.newRow(u)
	row.ID = p.ID
	row.List = p.List
	row.Read = p.Read
	row.Write = p.Write
	row.Create = p.Create
	row.Delete = p.Delete

	t.picker.remove(u.ID)
	return row, true
}

func (t *PermissionTable) hasUser(userID string) bool {
	for _, row := range t.rows {
		if row.UserID == userID {
			return true
		}
	}
	return false
}

func (t *PermissionTable) index(key int) int {
	for i, row := range t.rows {
		if row.Key == key {
			return i
		}
	}
	return -1
}

// Row returns the row with the given key.
func (t *PermissionTable) Row(key int) (*PermissionRow, bool) {
	if i := t.index(key); i >= 0 {
		return t.rows[i], true
	}
	return nil, false
}

// DeleteRow removes a row and gives its user back to the picker.
// If the row does not exist or its user is not in the directory, it does nothing.
func (t *PermissionTable) DeleteRow(key int) bool {

	var i = t.index(key)
	if i < 0 {
		return false
	}

	u, ok := t.directory.FindUser(t.rows[i].UserID)
	if !ok {
		return false
	}

	t.picker.Restore(u)
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// Toggle sets a flag of a row.
func (t *PermissionTable) Toggle(key int, f Flag, checked bool) (bool, error) {
	row, ok := t.Row(key)
	if !ok {
		return false, nil
	}
	return true, row.Set(f, checked)
}

// Rows returns the rows in insertion order. The rows are shared with the table.
func (t *PermissionTable) Rows() []*PermissionRow {
	return append([]*PermissionRow(nil), t.rows...)
}

// UserIDs returns the user ids of all rows in insertion order.
func (t *PermissionTable) UserIDs() []string {
	var ids = make([]string, len(t.rows))
	for i, row := range t.rows {
		ids[i] = row.UserID
	}
	return ids
}

func (t *PermissionTable) Len() int {
	return len(t.rows)
}
