package sqldb

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/wansing/scms/core"
)

// PermissionDB stores folder permissions. Column names carry a prefix because read, write, create and delete are SQL keywords.
type PermissionDB struct {
	*sql.DB
	clear  *sql.Stmt
	get    *sql.Stmt
	insert *sql.Stmt
}

func NewPermissionDB(db *sql.DB) *PermissionDB {

	mustExec(db, `
		CREATE TABLE IF NOT EXISTS folder_permission (
			id varchar(36) NOT NULL PRIMARY KEY,
			folderId varchar(36) NOT NULL,
			userId varchar(36) NOT NULL,
			perm_list tinyint(1) NOT NULL DEFAULT 0,
			perm_read tinyint(1) NOT NULL DEFAULT 0,
			perm_write tinyint(1) NOT NULL DEFAULT 0,
			perm_create tinyint(1) NOT NULL DEFAULT 0,
			perm_delete tinyint(1) NOT NULL DEFAULT 0,
			position int(11) NOT NULL DEFAULT 0,
			UNIQUE(folderId, userId)
		);`)

	var permissionDB = &PermissionDB{}
	permissionDB.DB = db
	permissionDB.clear = mustPrepare(db, "DELETE FROM folder_permission WHERE folderId = ?")
	permissionDB.get = mustPrepare(db, "SELECT id, folderId, userId, perm_list, perm_read, perm_write, perm_create, perm_delete FROM folder_permission WHERE folderId = ? ORDER BY position")
	permissionDB.insert = mustPrepare(db, "INSERT INTO folder_permission (id, folderId, userId, perm_list, perm_read, perm_write, perm_create, perm_delete, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return permissionDB
}

// GetPermissions returns the permissions of a folder in the order in which they were saved.
func (db *PermissionDB) GetPermissions(folderID string) ([]core.Permission, error) {

	rows, err := db.get.Query(folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms = []core.Permission{}
	for rows.Next() {
		var p core.Permission
		if err = rows.Scan(&p.ID, &p.FolderID, &p.UserID, &p.List, &p.Read, &p.Write, &p.Create, &p.Delete); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// ReplacePermissions deletes all permissions of the folder and inserts the given ones in one transaction.
// Permissions without id get a new one.
func (db *PermissionDB) ReplacePermissions(folderID string, perms []core.Permission) ([]core.Permission, error) {

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}

	if _, err = tx.Stmt(db.clear).Exec(folderID); err != nil {
		tx.Rollback()
		return nil, err
	}

	var insert = tx.Stmt(db.insert)
	var saved = make([]core.Permission, 0, len(perms))

	for i, p := range perms {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.FolderID = folderID
		if _, err = insert.Exec(p.ID, p.FolderID, p.UserID, p.List, p.Read, p.Write, p.Create, p.Delete, i); err != nil {
			tx.Rollback()
			return nil, err
		}
		saved = append(saved, p)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}
