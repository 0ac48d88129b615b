package seed

import (
	"database/sql"
	"fmt"
	"strings"
)

// An Account is a database login with one grant.
type Account struct {
	Name        string
	Password    string
	Privileges  string // like "SELECT, INSERT"
	On          string // like "`scms`.*"
	GrantOption bool
}

// Accounts returns the superuser, the log reader and the application account.
// The log reader may only read the log table, the application account may read and write the whole database.
func (c AccountsConfig) Accounts(database string) []Account {
	var db = quoteIdent(database)
	return []Account{
		{
			Name:        c.AdminName,
			Password:    c.AdminPassword,
			Privileges:  "ALL PRIVILEGES",
			On:          "*.*",
			GrantOption: true,
		},
		{
			Name:       c.LogName,
			Password:   c.LogPassword,
			Privileges: "SELECT",
			On:         db + "." + quoteIdent("log_entry"),
		},
		{
			Name:       c.AppName,
			Password:   c.AppPassword,
			Privileges: "SELECT, INSERT, UPDATE, DELETE, CREATE, INDEX",
			On:         db + ".*",
		},
	}
}

func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// quoteString quotes a MySQL string literal. CREATE USER does not take placeholders.
func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func (a Account) user(host string) string {
	return quoteString(a.Name) + "@" + quoteString(host)
}

// Statements returns the SQL statements which create the account and grant its privileges.
func (a Account) Statements(host string) []string {
	var grant = fmt.Sprintf("GRANT %s ON %s TO %s", a.Privileges, a.On, a.user(host))
	if a.GrantOption {
		grant += " WITH GRANT OPTION"
	}
	return []string{
		fmt.Sprintf("CREATE USER IF NOT EXISTS %s IDENTIFIED BY %s", a.user(host), quoteString(a.Password)),
		grant,
	}
}

// ProvisionAccounts creates the accounts in a MySQL database. It returns ErrUnsupportedDriver for other drivers, which have no accounts.
func ProvisionAccounts(db *sql.DB, driver string, host string, accounts []Account) error {

	if driver != "mysql" {
		return fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}

	for _, a := range accounts {
		for _, stmt := range a.Statements(host) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("provisioning account %s: %w", a.Name, err)
			}
		}
	}

	if _, err := db.Exec("FLUSH PRIVILEGES"); err != nil {
		return err
	}

	return nil
}
