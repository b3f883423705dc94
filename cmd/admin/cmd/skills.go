package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skills catalogue",
}

var skillsStructureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Print the well-known category catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		api := client.NewSkillsAPI(apiURL, tokens)

		structure, err := api.GetStructure(cmd.Context())
		if err != nil {
			return err
		}

		for _, cat := range structure.Categories {
			fmt.Println(cat.Name)
			if len(cat.Subcategories) > 0 {
				fmt.Printf("  %s\n", strings.Join(cat.Subcategories, ", "))
			}
		}
		return nil
	},
}

var skillsFlatCmd = &cobra.Command{
	Use:   "flat",
	Short: "Print all stored skills as flat categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		api := client.NewSkillsAPI(apiURL, tokens)

		flattened, err := api.GetFlattened(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(flattened)
	},
}

func init() {
	skillsCmd.AddCommand(skillsStructureCmd)
	skillsCmd.AddCommand(skillsFlatCmd)
	rootCmd.AddCommand(skillsCmd)
}
