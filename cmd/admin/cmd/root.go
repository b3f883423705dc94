package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go-portfolio-console/config"
	"go-portfolio-console/internal/client"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "portfolio-admin",
	Short: "Admin console for the portfolio backend",
	Long: `portfolio-admin manages the portfolio site content from the terminal.

Main features:
  - login/logout: admin session management
  - status: check API availability
  - show: inspect stored sections
  - edit: edit a section in $EDITOR and save it
  - settings: read and change skill categorization settings
  - skills: inspect the skills catalogue`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPIURL(), "base URL of the portfolio API")
}

// defaultAPIURL mirrors the server-side resolution so both halves agree on
// where the API lives when nothing is configured.
func defaultAPIURL() string {
	_ = godotenv.Load()
	cfg := &config.Config{
		APIHostname: os.Getenv("API_HOSTNAME"),
		APIPort:     os.Getenv("API_PORT"),
	}
	return cfg.APIBaseURL()
}

func newTokenProvider() (*client.TokenProvider, error) {
	return client.NewTokenProvider(apiURL, "")
}

// requireServer is the availability gate every data command runs first.
func requireServer(ctx context.Context) error {
	hc := client.NewHealthChecker(apiURL)
	if !hc.Check(ctx) {
		return fmt.Errorf("API at %s is not reachable, please try again later", apiURL)
	}
	return nil
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func printRawJSON(raw json.RawMessage) error {
	indented, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(indented))
	return nil
}
