package sqldb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wansing/scms/core"
)

const documentColumns = "id, title, body, url, level, folderId, created, edited"

type DocumentDB struct {
	*sql.DB
	get    *sql.Stmt
	getAll *sql.Stmt
	insert *sql.Stmt
	update *sql.Stmt
}

func NewDocumentDB(db *sql.DB) *DocumentDB {

	mustExec(db, `
		CREATE TABLE IF NOT EXISTS document (
			id varchar(36) NOT NULL PRIMARY KEY,
			title varchar(255) NOT NULL,
			body text NOT NULL,
			url varchar(255) NOT NULL DEFAULT '',
			level int(11) NOT NULL DEFAULT 0,
			folderId varchar(36) NOT NULL DEFAULT '',
			created bigint NOT NULL,
			edited bigint NOT NULL
		);`)

	var documentDB = &DocumentDB{}
	documentDB.DB = db
	documentDB.get = mustPrepare(db, "SELECT "+documentColumns+" FROM document WHERE id = ? LIMIT 1")
	documentDB.getAll = mustPrepare(db, "SELECT "+documentColumns+" FROM document ORDER BY title LIMIT ? OFFSET ?")
	documentDB.insert = mustPrepare(db, "INSERT INTO document ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	documentDB.update = mustPrepare(db, "UPDATE document SET title = ?, body = ?, url = ?, level = ?, folderId = ?, edited = ? WHERE id = ?")
	return documentDB
}

func scanDocument(row interface{ Scan(...interface{}) error }) (core.Document, error) {
	var d core.Document
	err := row.Scan(&d.ID, &d.Title, &d.Body, &d.URL, &d.Level, &d.FolderID, &d.Created, &d.Edited)
	return d, err
}

// GetDocument may return sql.ErrNoRows.
func (db *DocumentDB) GetDocument(id string) (core.Document, error) {
	return scanDocument(db.get.QueryRow(id))
}

func (db *DocumentDB) GetAllDocuments(limit, offset int) ([]core.Document, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs = []core.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// InsertDocument assigns a new id and sets both timestamps to now.
func (db *DocumentDB) InsertDocument(d core.Document) (core.Document, error) {
	d.ID = uuid.NewString()
	d.Created = time.Now().Unix()
	d.Edited = d.Created
	_, err := db.insert.Exec(d.ID, d.Title, d.Body, d.URL, d.Level, d.FolderID, d.Created, d.Edited)
	return d, err
}

// UpdateDocument sets the edit time to now. It returns the stored document and sql.ErrNoRows if it does not exist.
func (db *DocumentDB) UpdateDocument(d core.Document) (core.Document, error) {

	var edited = time.Now().Unix()

	if _, err := db.update.Exec(d.Title, d.Body, d.URL, d.Level, d.FolderID, edited, d.ID); err != nil {
		return core.Document{}, err
	}
	return db.GetDocument(d.ID) // MySQL reports no affected rows if nothing changed
}
