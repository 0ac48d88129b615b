package sqldb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xo/dburl"
)

// Open parses a database url (see github.com/xo/dburl), opens the database and pings it.
func Open(dbArg string) (*sql.DB, *dburl.URL, error) {

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse database url: %w", err)
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open sql database: %w", err)
	}

	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("could not ping sql database: %w", err)
	}

	return sqlDB, dbURL, nil
}

func mustExec(db *sql.DB, statements ...string) {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(fmt.Errorf("%s: %w", stmt, err))
		}
	}
}

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(fmt.Errorf("%s: %w", query, err))
	}
	return stmt
}
