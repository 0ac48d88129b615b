package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wansing/scms/core"
)

var ErrUnsupportedDriver = errors.New("database driver has no accounts")

// A Seeder provisions a fresh database. Running it again is harmless.
type Seeder struct {
	SqlDB    *sql.DB
	Driver   string // dburl driver name
	Database string // schema which the accounts are granted on
	Core     *core.CoreDB
	Config   Config
	Log      logrus.FieldLogger
}

func (s *Seeder) Run() error {

	if err := s.provisionAccounts(); err != nil {
		return err
	}

	if err := s.insertAdmin(); err != nil {
		return err
	}

	return s.insertDocument()
}

func (s *Seeder) provisionAccounts() error {
	err := ProvisionAccounts(s.SqlDB, s.Driver, s.Config.Accounts.Host, s.Config.Accounts.Accounts(s.Database))
	if errors.Is(err, ErrUnsupportedDriver) {
		s.Log.WithField("driver", s.Driver).Info("skipping database accounts")
		return nil
	}
	if err != nil {
		return err
	}
	s.Log.WithField("database", s.Database).Info("provisioned database accounts")
	return nil
}

func (s *Seeder) insertAdmin() error {

	var cfg = s.Config.Admin

	u, err := s.Core.InsertUser(
		core.User{
			Name:  cfg.Name,
			Email: cfg.Email,
			Level: cfg.Level,
			Admin: true,
			Tech:  false,
		},
		cfg.Password,
	)
	if errors.Is(err, core.ErrUserExists) {
		s.Log.WithField("name", cfg.Name).Info("admin user already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("inserting admin user: %w", err)
	}

	s.Log.WithField("name", u.Name).WithField("id", u.ID).Info("seeded admin user")
	return nil
}

func (s *Seeder) insertDocument() error {

	var cfg = s.Config.Document

	docs, err := s.Core.GetAllDocuments(100000, 0)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.Title == cfg.Title {
			s.Log.WithField("title", cfg.Title).Info("example document already exists")
			return nil
		}
	}

	d, err := s.Core.InsertDocument(core.Document{
		Title: cfg.Title,
		Body:  cfg.Body,
		URL:   cfg.URL,
		Level: cfg.Level,
	})
	if err != nil {
		return fmt.Errorf("inserting example document: %w", err)
	}

	s.Log.WithField("title", d.Title).WithField("id", d.ID).Info("seeded example document")
	return nil
}
