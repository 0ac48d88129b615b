package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wansing/scms/core"
	"github.com/wansing/scms/log"
	"github.com/wansing/scms/sqldb"
	"github.com/wansing/scms/sqldb/mysql"
	"github.com/wansing/scms/sqldb/sqlite3"
	"github.com/wansing/scms/util"
	"github.com/xo/dburl"
	"gopkg.in/ini.v1"
)

// MySQL: collation should be utf8mb4_unicode_ci
const defaultDB = "sqlite3:scms.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared"

type options struct {
	config   string
	db       string
	env      string
	logLevel string
	listen   string
	base     string
}

var opts options

var rootCmd = &cobra.Command{
	Use:           "scms",
	Short:         "Folder permissions and bootstrap tooling of the scms content management system",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.config, "config", "", "read settings from this ini `file`")
	rootCmd.PersistentFlags().StringVar(&opts.db, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "dev", "environment, prod logs JSON")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the log `level` of the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)
}

// resolve reads the config file. Values from the file replace defaults, but not flags which were given on the command line.
func (o *options) resolve(cmd *cobra.Command) (*ini.File, error) {

	f, err := util.LoadIni(o.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var fields = map[string]*string{
		"db":        &o.db,
		"env":       &o.env,
		"log-level": &o.logLevel,
		"listen":    &o.listen,
		"base":      &o.base,
	}
	for name, value := range fields {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			continue
		}
		*value = util.Override(f, name, *value)
	}

	o.base = util.NormalizePrefix(o.base)
	return f, nil
}

// app holds the opened database and everything built upon it.
type app struct {
	core  *core.CoreDB
	sqlDB *sql.DB
	url   *dburl.URL
	log   *logrus.Logger
}

func (a *app) Close() {
	a.log.Debug("closing database")
	a.sqlDB.Close()
}

// database name from the url path, used for grants
func (a *app) database() string {
	return strings.TrimPrefix(a.url.Path, "/")
}

func open(cmd *cobra.Command) (*app, *ini.File, error) {

	f, err := opts.resolve(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := log.New(opts.env, opts.logLevel, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, dbURL, err := sqldb.Open(opts.db)
	if err != nil {
		return nil, nil, err
	}

	logger.WithField("driver", dbURL.Driver).Infof("using database %s", dbURL.Redacted())

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore, err = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore, err = sqlite3.NewSessionStore(sqlDB)
	default:
		err = fmt.Errorf("unknown database backend: %s", dbURL.Driver)
	}
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	logger.AddHook(sqldb.NewLogHook(sqlDB))

	var db = &core.CoreDB{
		DocumentDB:   sqldb.NewDocumentDB(sqlDB),
		FolderDB:     sqldb.NewFolderDB(sqlDB),
		PermissionDB: sqldb.NewPermissionDB(sqlDB),
		UserDB:       sqldb.NewUserDB(sqlDB),
		Log:          logger,
	}

	if err = db.Init(sessionStore, opts.base); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return &app{
		core:  db,
		sqlDB: sqlDB,
		url:   dbURL,
		log:   logger,
	}, f, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
