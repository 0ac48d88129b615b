package sqldb

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/wansing/scms/core"
)

type FolderDB struct {
	*sql.DB
	get    *sql.Stmt
	getAll *sql.Stmt
	insert *sql.Stmt
	update *sql.Stmt
}

func NewFolderDB(db *sql.DB) *FolderDB {

	mustExec(db, `
		CREATE TABLE IF NOT EXISTS folder (
			id varchar(36) NOT NULL PRIMARY KEY,
			name varchar(128) NOT NULL,
			level int(11) NOT NULL DEFAULT 0
		);`)

	var folderDB = &FolderDB{}
	folderDB.DB = db
	folderDB.get = mustPrepare(db, "SELECT id, name, level FROM folder WHERE id = ? LIMIT 1")
	folderDB.getAll = mustPrepare(db, "SELECT id, name, level FROM folder ORDER BY name LIMIT ? OFFSET ?")
	folderDB.insert = mustPrepare(db, "INSERT INTO folder (id, name, level) VALUES (?, ?, ?)")
	folderDB.update = mustPrepare(db, "UPDATE folder SET name = ?, level = ? WHERE id = ?")
	return folderDB
}

// GetFolder may return sql.ErrNoRows.
func (db *FolderDB) GetFolder(id string) (core.Folder, error) {
	var f core.Folder
	return f, db.get.QueryRow(id).Scan(&f.ID, &f.Name, &f.Level)
}

func (db *FolderDB) GetAllFolders(limit, offset int) ([]core.Folder, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders = []core.Folder{}
	for rows.Next() {
		var f core.Folder
		if err = rows.Scan(&f.ID, &f.Name, &f.Level); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (db *FolderDB) InsertFolder(name string, level int) (core.Folder, error) {
	var f = core.Folder{
		ID:    uuid.NewString(),
		Name:  name,
		Level: level,
	}
	_, err := db.insert.Exec(f.ID, f.Name, f.Level)
	return f, err
}

func (db *FolderDB) UpdateFolder(f core.Folder) error {
	_, err := db.update.Exec(f.Name, f.Level, f.ID)
	return err
}
