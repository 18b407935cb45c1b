package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"hoteldesk/internal/guard"
	"hoteldesk/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail string
	stdin      = bufio.NewReader(os.Stdin)
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the hotel backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			var err error
			if email, err = prompt("Email: "); err != nil {
				return err
			}
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		sess, pending, err := Container.Session.Login(cmd.Context(), email, password)
		if err != nil {
			if errors.Is(err, session.ErrLoginFailed) {
				return errors.New(session.LoginFailedMessage)
			}
			return err
		}

		fmt.Printf("Signed in as %s (%s)\n", sess.DisplayName, sess.Role)
		fmt.Printf("Dashboard: %s\n", guard.AfterLogin(sess, pending))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Container.Session.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, ok := Container.Session.Current()
		if !ok {
			return errNotLoggedIn
		}
		fmt.Println("\n--- SESSION ---")
		fmt.Printf("ID:    %s\n", sess.SubjectID)
		fmt.Printf("Name:  %s\n", sess.DisplayName)
		fmt.Printf("Email: %s\n", sess.Email)
		fmt.Printf("Role:  %s\n", sess.Role)
		fmt.Printf("API:   %s\n", Container.Client.BaseURL())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	RootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword hides input on a terminal and falls back to a plain line
// when stdin is piped.
func readPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt("")
	}
	fmt.Print(label)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return string(pw), nil
}
