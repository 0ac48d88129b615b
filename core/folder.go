package core

import (
	"errors"
	"path"
	"strings"
)

type Folder struct {
	ID    string
	Name  string
	Level int
}

type FolderDB interface {
	GetAllFolders(limit, offset int) ([]Folder, error)
	GetFolder(id string) (Folder, error)
	InsertFolder(name string, level int) (Folder, error)
	UpdateFolder(f Folder) error
}

var (
	ErrNoFolderID      = errors.New("no folder id in path")
	ErrEmptyFolderName = errors.New("folder name can't be empty")
)

// FolderIDFromPath returns the last segment of an URL path. A trailing slash yields an empty id.
func FolderIDFromPath(p string) string {
	_, id := path.Split(p)
	return id
}

// InsertFolder shadows FolderDB.InsertFolder.
func (c *CoreDB) InsertFolder(name string, level int) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, ErrEmptyFolderName
	}
	return c.FolderDB.InsertFolder(name, level)
}

// UpdateFolder shadows FolderDB.UpdateFolder.
func (c *CoreDB) UpdateFolder(f Folder) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return ErrEmptyFolderName
	}
	return c.FolderDB.UpdateFolder(f)
}

// OpenPermissionsForm builds the permissions form of a folder with the stored permissions as rows.
func (c *CoreDB) OpenPermissionsForm(folder Folder) (*FolderPermissionsForm, error) {
	stored, err := c.GetPermissions(folder.ID)
	if err != nil {
		return nil, err
	}
	return c.RestorePermissionsForm(folder, stored)
}

// RestorePermissionsForm builds the permissions form of a folder from all users and the given rows, like they were posted back by the browser.
func (c *CoreDB) RestorePermissionsForm(folder Folder, rows []Permission) (*FolderPermissionsForm, error) {

	users, err := c.GetAllUsers(100000, 0) // assuming there are not more than 100k users
	if err != nil {
		return nil, err
	}

	payload, err := NewUserDirectory(users).Payload()
	if err != nil {
		return nil, err
	}

	return NewFolderPermissionsForm(folder.ID, payload, rows)
}
