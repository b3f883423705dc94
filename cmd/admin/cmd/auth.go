package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the portfolio API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}

		fmt.Print("Admin password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(password, "\r\n")

		if err := tokens.Login(cmd.Context(), password); err != nil {
			if errors.Is(err, client.ErrInvalidPassword) {
				return fmt.Errorf("invalid password")
			}
			return err
		}

		fmt.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin token",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		if err := tokens.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
