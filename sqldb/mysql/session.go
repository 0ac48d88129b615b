package mysql

import (
	"database/sql"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

// NewSessionStore creates the sessions table if it does not exist and returns a store which uses it.
//
// MySQL has no CREATE INDEX IF NOT EXISTS, so the expiry index is part of the table definition.
func NewSessionStore(db *sql.DB) (scs.Store, error) {

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token CHAR(43) PRIMARY KEY,
			data BLOB NOT NULL,
			expiry TIMESTAMP(6) NOT NULL,
			INDEX sessions_expiry_idx (expiry)
		);`); err != nil {
		return nil, err
	}

	return mysqlstore.New(db), nil
}
