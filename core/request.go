package core

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

const (
	sessionUID           = "uid"
	sessionNotifications = "notifications"
)

// A Notification is shown once on the next rendered page. Style is a bootstrap alert style without the "alert-" prefix.
type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // session values are gob encoded
}

// A Request bundles the http request, its response writer and the logged-in user.
type Request struct {
	db   *CoreDB // unexported, so templates can't reach it
	User *User

	writer     http.ResponseWriter
	request    *http.Request
	redirected bool
}

// NewRequest sets Request.User if the session belongs to an existing user.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		db:      c,
		writer:  w,
		request: httpreq,
	}

	var uid = c.SessionManager.GetString(httpreq.Context(), sessionUID)
	if uid == "" {
		return req
	}

	u, err := c.GetUser(uid)
	if err != nil {
		c.Log.WithError(err).WithField("uid", uid).Warn("session user not found")
		return req
	}
	req.User = &u
	return req
}

func (req *Request) ctx() context.Context {
	return req.request.Context()
}

func (req *Request) session() *scs.SessionManager {
	return req.db.SessionManager
}

func (req *Request) notify(style, message string) {
	var list, _ = req.session().Get(req.ctx(), sessionNotifications).([]Notification)
	req.session().Put(req.ctx(), sessionNotifications, append(list, Notification{Message: message, Style: style}))
}

// Danger shows the error message on the next page.
func (req *Request) Danger(err error) {
	req.notify("danger", err.Error())
}

func (req *Request) Success(format string, args ...interface{}) {
	req.notify("success", fmt.Sprintf(format, args...))
}

// Notifications pops the pending notifications from the session. After a redirect they are kept for the next page.
func (req *Request) Notifications() []Notification {
	if req.redirected {
		return nil
	}
	list, _ := req.session().Pop(req.ctx(), sessionNotifications).([]Notification)
	return list
}

// Cleanup destroys a session which has been emptied during the request, so its cookie is removed.
func (req *Request) Cleanup() {
	var sm = req.session()
	if sm.Status(req.ctx()) != scs.Modified {
		return
	}
	if len(sm.Keys(req.ctx())) > 0 {
		return
	}
	_ = sm.Destroy(req.ctx())
}

// SeeOther redirects to the given URL. Only the first call has an effect.
func (req *Request) SeeOther(format string, args ...interface{}) {
	if req.redirected {
		return
	}
	req.redirected = true
	http.Redirect(req.writer, req.request, fmt.Sprintf(format, args...), http.StatusSeeOther)
}

// Login checks the credentials and stores the user id in a renewed session.
func (req *Request) Login(email, password string) error {
	if req.LoggedIn() {
		return nil
	}
	u, err := req.db.LoginUser(email, password)
	if err != nil {
		return err
	}
	if err := req.session().RenewToken(req.ctx()); err != nil {
		return err
	}
	req.session().Put(req.ctx(), sessionUID, u.ID)
	req.User = &u
	req.Success("Welcome %s!", u.Name)
	return nil
}

func (req *Request) LoggedIn() bool {
	return req.User != nil
}

func (req *Request) Logout() {
	if req.LoggedIn() {
		req.session().Remove(req.ctx(), sessionUID)
		req.User = nil
	}
	req.Cleanup()
}

// FormatDateTime formats a unix timestamp.
func (req *Request) FormatDateTime(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}
