package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wansing/scms/core"
	"golang.org/x/crypto/ssh/terminal"
)

var newUser core.User

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user, the password is read from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {

		a, _, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := readPassword(newUser.Name)
		if err != nil {
			return err
		}

		u, err := a.core.InsertUser(newUser, password)
		if err != nil {
			return fmt.Errorf("error creating user %s: %w", newUser.Name, err)
		}

		a.log.WithField("id", u.ID).WithField("name", u.Name).Info("created user")
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&newUser.Name, "name", "", "user `name`")
	userAddCmd.Flags().StringVar(&newUser.Email, "email", "", "email `address`, used for login")
	userAddCmd.Flags().IntVar(&newUser.Level, "level", 0, "user level from 0 to 7")
	userAddCmd.Flags().BoolVar(&newUser.Admin, "admin", false, "make the user an admin")
	userAddCmd.Flags().BoolVar(&newUser.Tech, "tech", false, "make the user a tech")
	userAddCmd.MarkFlagRequired("name")
	userAddCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userAddCmd)
}

func readPassword(name string) (string, error) {

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	if !bytes.Equal(pass1, pass2) {
		return "", errors.New("passwords don't match")
	}

	return string(pass1), nil
}
