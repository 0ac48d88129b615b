package sqldb

import (
	"database/sql"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/scms/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // every connection would get its own in-memory database
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	db, dbURL, err := Open("sqlite3::memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "sqlite3", dbURL.Driver)

	_, _, err = Open("nosuchdriver://foo")
	assert.Error(t, err)
}

func TestUserDB(t *testing.T) {
	var userDB = NewUserDB(newTestDB(t))

	ann, err := userDB.InsertUser(core.User{Name: " Ann ", Email: "Ann@Example.com", Level: 3, Tech: true}, "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, ann.ID)
	assert.Equal(t, "Ann", ann.Name)
	assert.Equal(t, "ann@example.com", ann.Email)

	bob, err := userDB.InsertUser(core.User{Name: "Bob", Email: "bob@example.com", Level: 7, Admin: true}, "hunter2")
	require.NoError(t, err)

	got, err := userDB.GetUser(ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann, got)

	got, err = userDB.GetUserByEmail(" BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	_, err = userDB.GetUser("nobody")
	assert.Equal(t, sql.ErrNoRows, err)

	all, err := userDB.GetAllUsers(10, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.User{ann, bob}, all)

	all, err = userDB.GetAllUsers(10, 1)
	require.NoError(t, err)
	assert.Equal(t, []core.User{bob}, all)

	exists, err := userDB.Exists("Ann", "other@example.com", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = userDB.Exists("Ann", "ann@example.com", ann.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the user itself does not count")

	exists, err = userDB.Exists("Carl", "carl@example.com", "")
	require.NoError(t, err)
	assert.False(t, exists)

	bob.Name = "Robert"
	bob.Email = " Robert@Example.com"
	bob.Admin = false
	bob.Tech = true
	bob.Level = 4
	require.NoError(t, userDB.UpdateUser(bob))
	got, err = userDB.GetUser(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, core.User{ID: bob.ID, Name: "Robert", Email: "robert@example.com", Level: 4, Tech: true}, got)

	_, err = userDB.LoginUser("robert@example.com", "hunter2")
	assert.NoError(t, err, "the password is kept")

	_, err = userDB.InsertUser(core.User{Name: "Ann2", Email: "ann@example.com"}, "x")
	assert.Error(t, err, "email is unique")

	_, err = userDB.InsertUser(core.User{Name: "Carl", Email: "carl@example.com"}, "")
	assert.Error(t, err)
}

func TestUserDBLogin(t *testing.T) {
	var userDB = NewUserDB(newTestDB(t))

	ann, err := userDB.InsertUser(core.User{Name: "Ann", Email: "ann@example.com"}, "secret")
	require.NoError(t, err)

	got, err := userDB.LoginUser("ANN@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)

	_, err = userDB.LoginUser("ann@example.com", "wrong")
	assert.Equal(t, ErrAuth, err)

	_, err = userDB.LoginUser("nobody@example.com", "secret")
	assert.Equal(t, ErrAuth, err)

	require.NoError(t, userDB.SetPassword(ann, "changed"))

	_, err = userDB.LoginUser("ann@example.com", "secret")
	assert.Equal(t, ErrAuth, err)

	_, err = userDB.LoginUser("ann@example.com", "changed")
	assert.NoError(t, err)
}

func TestFolderDB(t *testing.T) {
	var folderDB = NewFolderDB(newTestDB(t))

	docs, err := folderDB.InsertFolder("Documents", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, docs.ID)

	archive, err := folderDB.InsertFolder("Archive", 0)
	require.NoError(t, err)

	got, err := folderDB.GetFolder(docs.ID)
	require.NoError(t, err)
	assert.Equal(t, docs, got)

	all, err := folderDB.GetAllFolders(10, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Folder{archive, docs}, all) // ordered by name

	_, err = folderDB.GetFolder("nonexistent")
	assert.Equal(t, sql.ErrNoRows, err)

	docs.Name = "Papers"
	docs.Level = 5
	require.NoError(t, folderDB.UpdateFolder(docs))
	got, err = folderDB.GetFolder(docs.ID)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestPermissionDB(t *testing.T) {
	var permissionDB = NewPermissionDB(newTestDB(t))

	perms, err := permissionDB.GetPermissions("f7")
	require.NoError(t, err)
	assert.Empty(t, perms)

	saved, err := permissionDB.ReplacePermissions("f7", []core.Permission{
		{FolderID: "f7", UserID: "u2", List: true, Read: true},
		{FolderID: "f7", UserID: "u1", Write: true, Delete: true},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)

	stored, err := permissionDB.GetPermissions("f7")
	require.NoError(t, err)
	assert.Equal(t, saved, stored, "stored in saved order")

	// other folders are not affected
	_, err = permissionDB.ReplacePermissions("f8", []core.Permission{{UserID: "u1", Read: true}})
	require.NoError(t, err)

	// keep the first id, drop the second row
	var keep = stored[0]
	keep.Create = true
	saved, err = permissionDB.ReplacePermissions("f7", []core.Permission{keep})
	require.NoError(t, err)

	stored, err = permissionDB.GetPermissions("f7")
	require.NoError(t, err)
	assert.Equal(t, []core.Permission{keep}, stored)

	f8, err := permissionDB.GetPermissions("f8")
	require.NoError(t, err)
	require.Len(t, f8, 1)
	assert.Equal(t, "f8", f8[0].FolderID)
	assert.True(t, f8[0].Read)
}

func TestPermissionDBRollback(t *testing.T) {
	var permissionDB = NewPermissionDB(newTestDB(t))

	_, err := permissionDB.ReplacePermissions("f7", []core.Permission{{UserID: "u1", Read: true}})
	require.NoError(t, err)

	// the unique constraint on (folderId, userId) fails the second insert
	_, err = permissionDB.ReplacePermissions("f7", []core.Permission{
		{UserID: "u2"},
		{UserID: "u2"},
	})
	require.Error(t, err)

	stored, err := permissionDB.GetPermissions("f7")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "u1", stored[0].UserID)
}

func TestDocumentDB(t *testing.T) {
	var documentDB = NewDocumentDB(newTestDB(t))

	doc, err := documentDB.InsertDocument(core.Document{Title: "Example Document", Body: "This is an example document. Please edit it"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.NotZero(t, doc.Created)
	assert.Equal(t, doc.Created, doc.Edited)

	got, err := documentDB.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	all, err := documentDB.GetAllDocuments(10, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Document{doc}, all)

	doc.Title = "Edited Document"
	doc.Body = "# Edited"
	doc.FolderID = "f7"
	doc.Level = 3
	doc.Created = 0 // not written
	updated, err := documentDB.UpdateDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, got.Created, updated.Created)
	assert.GreaterOrEqual(t, updated.Edited, got.Edited)
	assert.Equal(t, "Edited Document", updated.Title)
	assert.Equal(t, "# Edited", updated.Body)
	assert.Equal(t, "f7", updated.FolderID)
	assert.Equal(t, 3, updated.Level)

	_, err = documentDB.UpdateDocument(core.Document{ID: "nonexistent", Title: "x"})
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestLogHook(t *testing.T) {
	var db = newTestDB(t)

	var logger = logrus.New()
	logger.AddHook(NewLogHook(db))

	logger.WithField("folder", "f7").Info("permissions saved")
	logger.Debug("not stored")

	var level, msg, fields string
	require.NoError(t, db.QueryRow("SELECT level, msg, fields FROM log_entry").Scan(&level, &msg, &fields))
	assert.Equal(t, "info", level)
	assert.Equal(t, "permissions saved", msg)
	assert.JSONEq(t, `{"folder":"f7"}`, fields)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log_entry").Scan(&count))
	assert.Equal(t, 1, count)
}
