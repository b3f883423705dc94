package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
	"go-portfolio-console/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Print the stored portfolio, or one section of it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		store := client.NewStore(apiURL)

		if len(args) == 0 {
			doc, err := store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(doc)
		}

		name := args[0]
		if !domain.KnownSection(name) {
			return fmt.Errorf("unknown section %q (valid: %v)", name, domain.SectionNames)
		}

		payload, err := store.FetchSection(cmd.Context(), name)
		if err != nil {
			return err
		}
		return printRawJSON(payload)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
