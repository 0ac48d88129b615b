package core

import (
	"errors"
	"fmt"
)

// A Flag is one of the five permissions a user can have on a folder.
type Flag string

const (
	List   Flag = "list"
	Read   Flag = "read"
	Write  Flag = "write"
	Create Flag = "create"
	Delete Flag = "delete"
)

// Flags in column order.
var Flags = []Flag{List, Read, Write, Create, Delete}

func (f Flag) String() string {
	return string(f)
}

func (f Flag) Valid() bool {
	switch f {
	case List, Read, Write, Create, Delete:
		return true
	default:
		return false
	}
}

var ErrInvalidFlag = errors.New("invalid permission flag")

// Permission is the stored form of a permission row. ID is empty for permissions which have not been saved yet.
type Permission struct {
	ID       string `json:"id,omitempty"`
	FolderID string `json:"folderId"`
	UserID   string `json:"userId"`
	List     bool   `json:"list"`
	Read     bool   `json:"read"`
	Write    bool   `json:"write"`
	Create   bool   `json:"create"`
	Delete   bool   `json:"delete"`
}

func (p *Permission) flag(f Flag) (*bool, error) {
	switch f {
	case List:
		return &p.List, nil
	case Read:
		return &p.Read, nil
	case Write:
		return &p.Write, nil
	case Create:
		return &p.Create, nil
	case Delete:
		return &p.Delete, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidFlag, string(f))
}

// Get returns the value of a flag. Invalid flags are false.
func (p Permission) Get(f Flag) bool {
	ptr, err := p.flag(f)
	if err != nil {
		return false
	}
	return *ptr
}

func (p *Permission) Set(f Flag, value bool) error {
	ptr, err := p.flag(f)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

type PermissionDB interface {
	GetPermissions(folderID string) ([]Permission, error)
	// ReplacePermissions atomically replaces all permissions of a folder and returns them with ids assigned.
	ReplacePermissions(folderID string, perms []Permission) ([]Permission, error)
}

var (
	ErrFolderMismatch = errors.New("permission belongs to another folder")
	ErrUnknownUser    = errors.New("unknown user")
	ErrDuplicateUser  = errors.New("user has more than one permission")
)

// SavePermissions validates the permission records posted for a folder and replaces the stored ones.
// Records with an empty folder id are assigned to the folder.
func (c *CoreDB) SavePermissions(folder Folder, perms []Permission) ([]Permission, error) {

	var seen = make(map[string]struct{}, len(perms))

	for i := range perms {
		var p = &perms[i]
		if p.FolderID == "" {
			p.FolderID = folder.ID
		}
		if p.FolderID != folder.ID {
			return nil, fmt.Errorf("%w: %s", ErrFolderMismatch, p.FolderID)
		}
		if _, err := c.UserDB.GetUser(p.UserID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, p.UserID)
		}
		if _, ok := seen[p.UserID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, p.UserID)
		}
		seen[p.UserID] = struct{}{}
	}

	return c.PermissionDB.ReplacePermissions(folder.ID, perms)
}
