package main

import (
	"github.com/spf13/cobra"
	"github.com/wansing/scms/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the database accounts, the admin user and an example document",
	Long: `Seed provisions a fresh database. On MySQL, it creates the accounts admin, scms_log and scms.
Passwords and the admin user can be set in the [admin], [document] and [accounts] sections of the config file.
Running it again skips what exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		a, f, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := seed.ConfigFromIni(f)
		if err != nil {
			return err
		}

		var seeder = &seed.Seeder{
			SqlDB:    a.sqlDB,
			Driver:   a.url.Driver,
			Database: a.database(),
			Core:     a.core,
			Config:   cfg,
			Log:      a.log,
		}
		return seeder.Run()
	},
}
