package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "scms.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
db = sqlite3:from-ini.sqlite3
listen = 0.0.0.0:80
base = scms/

[admin]
password = changeme
`), 0600))

	var o = options{config: path}
	var cmd = &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&o.db, "db", defaultDB, "")
	cmd.Flags().StringVar(&o.listen, "listen", "127.0.0.1:8080", "")
	cmd.Flags().StringVar(&o.env, "env", "dev", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--listen", "127.0.0.1:9000"}))

	f, err := o.resolve(cmd)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3:from-ini.sqlite3", o.db)
	assert.Equal(t, "127.0.0.1:9000", o.listen)
	assert.Equal(t, "dev", o.env)
	assert.Equal(t, "/scms", o.base)
	assert.Equal(t, "changeme", f.Section("admin").Key("password").String())
}

func TestResolveMissingConfig(t *testing.T) {
	var o = options{config: filepath.Join(t.TempDir(), "missing.ini")}
	_, err := o.resolve(&cobra.Command{Use: "test"})
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	var saved = opts
	defer func() { opts = saved }()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	opts = options{
		db:       "sqlite3:scms.sqlite3",
		env:      "dev",
		logLevel: "warn",
	}

	var cmd = &cobra.Command{Use: "test"}
	require.NoError(t, seedCmd.RunE(cmd, nil))
	require.NoError(t, seedCmd.RunE(cmd, nil), "seeding twice")

	a, _, err := open(cmd)
	require.NoError(t, err)
	defer a.Close()

	u, err := a.core.LoginUser("admin@email.com", "admin")
	require.NoError(t, err)
	assert.True(t, u.Admin)
	assert.Equal(t, 7, u.Level)

	docs, err := a.core.GetAllDocuments(10, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Example Document", docs[0].Title)

	var count int
	require.NoError(t, a.sqlDB.QueryRow("SELECT COUNT(*) FROM log_entry").Scan(&count))
	assert.Zero(t, count, "nothing above warn level was logged")
}
