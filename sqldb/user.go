package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wansing/scms/core"
	"golang.org/x/crypto/bcrypt"
)

var ErrAuth = errors.New("authentication failed")

func clean(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)
	return email
}

const userColumns = "id, name, email, level, admin, tech"

func scanUser(row interface{ Scan(...interface{}) error }) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Level, &u.Admin, &u.Tech)
	return u, err
}

type UserDB struct {
	*sql.DB
	exists      *sql.Stmt
	get         *sql.Stmt
	getAll      *sql.Stmt
	getByEmail  *sql.Stmt
	insert      *sql.Stmt
	login       *sql.Stmt
	setPassword *sql.Stmt
	update      *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	mustExec(db, `
		CREATE TABLE IF NOT EXISTS usr (
			id varchar(36) NOT NULL PRIMARY KEY,
			name varchar(128) NOT NULL,
			email varchar(128) NOT NULL,
			level int(11) NOT NULL DEFAULT 0,
			admin tinyint(1) NOT NULL DEFAULT 0,
			tech tinyint(1) NOT NULL DEFAULT 0,
			password varchar(64) NOT NULL DEFAULT '',
			UNIQUE(email)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.exists = mustPrepare(db, "SELECT COUNT(*) FROM usr WHERE (name = ? OR email = ?) AND id != ?")
	userDB.get = mustPrepare(db, "SELECT "+userColumns+" FROM usr WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT "+userColumns+" FROM usr ORDER BY name LIMIT ? OFFSET ?")
	userDB.getByEmail = mustPrepare(db, "SELECT "+userColumns+" FROM usr WHERE email = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (id, name, email, level, admin, tech, password) VALUES (?, ?, ?, ?, ?, ?, ?)")
	userDB.login = mustPrepare(db, "SELECT "+userColumns+", password FROM usr WHERE email = ?")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET password = ? WHERE id = ?")
	userDB.update = mustPrepare(db, "UPDATE usr SET name = ?, email = ?, level = ?, admin = ?, tech = ? WHERE id = ?")
	return userDB
}

// GetUser may return sql.ErrNoRows.
func (db *UserDB) GetUser(id string) (core.User, error) {
	return scanUser(db.get.QueryRow(id))
}

func (db *UserDB) GetUserByEmail(email string) (core.User, error) {
	return scanUser(db.getByEmail.QueryRow(clean(email)))
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]core.User, error) {

	var all = []core.User{}

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, u)
	}

	return all, rows.Err()
}

// Exists returns whether a user other than exceptID has the given name or email address.
func (db *UserDB) Exists(name, email, exceptID string) (bool, error) {
	var count int
	err := db.exists.QueryRow(strings.TrimSpace(name), clean(email), exceptID).Scan(&count)
	return count > 0, err
}

// InsertUser assigns a new id to the user and stores it with the bcrypt hash of the password.
func (db *UserDB) InsertUser(u core.User, password string) (core.User, error) {

	if password == "" {
		return core.User{}, errors.New("no password given")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, err
	}

	u.ID = uuid.NewString()
	u.Name = strings.TrimSpace(u.Name)
	u.Email = clean(u.Email)

	_, err = db.insert.Exec(u.ID, u.Name, u.Email, u.Level, u.Admin, u.Tech, string(hash))
	if err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (db *UserDB) LoginUser(email, password string) (core.User, error) {

	var u core.User
	var hash string

	err := db.login.QueryRow(clean(email)).Scan(&u.ID, &u.Name, &u.Email, &u.Level, &u.Admin, &u.Tech, &hash)
	if err == sql.ErrNoRows {
		return core.User{}, ErrAuth // user not found
	}
	if err != nil {
		return core.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return core.User{}, ErrAuth // wrong password
	}

	return u, nil
}

func (db *UserDB) SetPassword(u core.User, password string) error {

	if password == "" {
		return errors.New("no password given")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.setPassword.Exec(string(hash), u.ID)
	return err
}

// UpdateUser stores name, email address, level and the admin and tech flags. The password is not changed.
func (db *UserDB) UpdateUser(u core.User) error {
	_, err := db.update.Exec(strings.TrimSpace(u.Name), clean(u.Email), u.Level, u.Admin, u.Tech, u.ID)
	return err
}
