package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the API and report availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := client.NewHealthChecker(apiURL)
		if hc.Check(cmd.Context()) {
			fmt.Printf("API available at %s\n", apiURL)
		} else {
			fmt.Printf("API unavailable at %s\n", apiURL)
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		if tokens.IsAuthenticated() {
			fmt.Println("Admin session: active")
		} else {
			fmt.Println("Admin session: not logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
