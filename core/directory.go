package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedDirectory = errors.New("malformed user directory")

// directoryPayload is the shape of the JSON blob which is embedded into the permissions page.
type directoryPayload struct {
	Users []User `json:"users"`
}

// A UserDirectory maps user ids to users. It is read-only after construction.
type UserDirectory struct {
	users []User         // payload order
	byID  map[string]int // user id -> index in users
}

// NewUserDirectory copies the given users. Later duplicates of an id are ignored.
func NewUserDirectory(users []User) *UserDirectory {
	var d = &UserDirectory{
		users: make([]User, 0, len(users)),
		byID:  make(map[string]int, len(users)),
	}
	for _, u := range users {
		if _, ok := d.byID[u.ID]; ok {
			continue
		}
		d.byID[u.ID] = len(d.users)
		d.users = append(d.users, u)
	}
	return d
}

// ParseUserDirectory parses the embedded users blob. A malformed payload, a missing users array, an empty or a duplicate user id is an error.
func ParseUserDirectory(payload []byte) (*UserDirectory, error) {

	var p directoryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDirectory, err)
	}
	if p.Users == nil {
		return nil, fmt.Errorf("%w: no users array", ErrMalformedDirectory)
	}

	var seen = make(map[string]struct{}, len(p.Users))
	for _, u := range p.Users {
		if u.ID == "" {
			return nil, fmt.Errorf("%w: user without id", ErrMalformedDirectory)
		}
		if _, ok := seen[u.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate user id %s", ErrMalformedDirectory, u.ID)
		}
		seen[u.ID] = struct{}{}
	}

	return NewUserDirectory(p.Users), nil
}

// Payload returns the JSON blob from which ParseUserDirectory would rebuild the receiver.
func (d *UserDirectory) Payload() ([]byte, error) {
	var users = d.users
	if users == nil {
		users = []User{}
	}
	return json.Marshal(directoryPayload{Users: users})
}

func (d *UserDirectory) FindUser(id string) (User, bool) {
	if i, ok := d.byID[id]; ok {
		return d.users[i], true
	}
	return User{}, false
}

// Users returns a copy of all users in payload order.
func (d *UserDirectory) Users() []User {
	return append([]User(nil), d.users...)
}

func (d *UserDirectory) Len() int {
	return len(d.users)
}
