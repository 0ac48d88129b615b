package seed

import (
	"gopkg.in/ini.v1"
)

type AdminConfig struct {
	Name     string `ini:"name"`
	Email    string `ini:"email"`
	Password string `ini:"password"`
	Level    int    `ini:"level"`
}

type DocumentConfig struct {
	Title string `ini:"title"`
	Body  string `ini:"body"`
	URL   string `ini:"url"`
	Level int    `ini:"level"`
}

// AccountsConfig configures the database accounts. Host is the MySQL host part, "%" matches any host.
type AccountsConfig struct {
	Host          string `ini:"host"`
	AdminName     string `ini:"admin_name"`
	AdminPassword string `ini:"admin_password"`
	LogName       string `ini:"log_name"`
	LogPassword   string `ini:"log_password"`
	AppName       string `ini:"app_name"`
	AppPassword   string `ini:"app_password"`
}

// Config maps the [admin], [document] and [accounts] sections of an ini file.
type Config struct {
	Admin    AdminConfig    `ini:"admin"`
	Document DocumentConfig `ini:"document"`
	Accounts AccountsConfig `ini:"accounts"`
}

func DefaultConfig() Config {
	return Config{
		Admin: AdminConfig{
			Name:     "admin",
			Email:    "admin@email.com",
			Password: "admin",
			Level:    7,
		},
		Document: DocumentConfig{
			Title: "Example Document",
			Body:  "This is an example document. Please edit it",
			URL:   "",
			Level: 0,
		},
		Accounts: AccountsConfig{
			Host:          "%",
			AdminName:     "admin",
			AdminPassword: "admin",
			LogName:       "scms_log",
			LogPassword:   "scms_log",
			AppName:       "scms",
			AppPassword:   "scms",
		},
	}
}

// ConfigFromIni overrides the defaults with the keys which are present in f.
func ConfigFromIni(f *ini.File) (Config, error) {
	var c = DefaultConfig()
	if err := f.MapTo(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
