package core

import (
	"errors"
	"strconv"
)

// User is immutable for the duration of a request.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"-"`
	Level int    `json:"level"`
	Admin bool   `json:"admin"`
	Tech  bool   `json:"tech"`
}

// Title is the hover text of a permission row, one attribute per line.
func (u User) Title() string {
	var title = "Level: " + strconv.Itoa(u.Level)
	if u.Admin {
		title += "\nAdmin"
	}
	if u.Tech {
		title += "\nTech"
	}
	return title
}

type UserDB interface {
	GetAllUsers(limit, offset int) ([]User, error)
	GetUser(id string) (User, error)
	GetUserByEmail(email string) (User, error)
	InsertUser(u User, password string) (User, error)
	LoginUser(email, password string) (User, error)
	SetPassword(u User, password string) error
	UpdateUser(u User) error
	// Exists returns whether another user than exceptID has the given name or email address.
	Exists(name, email, exceptID string) (bool, error)
}

var ErrEmptyPassword = errors.New("refusing to set empty password")

var ErrUserExists = errors.New("a user with this name or email already exists")

// SetPassword shadows UserDB.SetPassword.
func (c *CoreDB) SetPassword(u User, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return c.UserDB.SetPassword(u, password)
}

// InsertUser shadows UserDB.InsertUser. It rejects duplicate names and email addresses.
func (c *CoreDB) InsertUser(u User, password string) (User, error) {
	if password == "" {
		return User{}, ErrEmptyPassword
	}
	exists, err := c.UserDB.Exists(u.Name, u.Email, "")
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrUserExists
	}
	return c.UserDB.InsertUser(u, password)
}

// UpdateUser shadows UserDB.UpdateUser. The name and email address must not belong to another user.
func (c *CoreDB) UpdateUser(u User) error {
	exists, err := c.UserDB.Exists(u.Name, u.Email, u.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}
	return c.UserDB.UpdateUser(u)
}
