package core

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
)

type CoreDB struct {
	DocumentDB
	FolderDB
	PermissionDB
	UserDB
	SessionManager *scs.SessionManager
	Log            logrus.FieldLogger
}

func (c *CoreDB) Init(sessionStore scs.Store, cookiePath string) error {

	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}

	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Name = "scms_session"
	c.SessionManager.Cookie.Path = cookiePath + "/"
	c.SessionManager.Cookie.HttpOnly = true
	c.SessionManager.Cookie.Persist = false
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 24 * time.Hour

	return nil
}
