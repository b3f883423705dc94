package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
	"go-portfolio-console/internal/domain"
)

var (
	setUseSubcategories bool
	setMinSkills        int
	setOverrides        []string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change skill categorization settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored categorization settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		api := client.NewSkillsAPI(apiURL, tokens)

		settings, err := api.GetCategorization(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(settings)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change categorization settings",
	Long: `set reads the current settings, applies the given flags and writes the
result back in one call. Overrides take the form category=mode where mode is
auto, flat or subcategories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		api := client.NewSkillsAPI(apiURL, tokens)

		settings, err := api.GetCategorization(cmd.Context())
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("use-subcategories") {
			settings.UseSubcategories = setUseSubcategories
		}
		if cmd.Flags().Changed("min-skills") {
			settings.MinSkillsForSubcategory = setMinSkills
		}
		if settings.CategoryOverrides == nil {
			settings.CategoryOverrides = map[string]domain.CategorizationMode{}
		}
		for _, override := range setOverrides {
			category, mode, ok := strings.Cut(override, "=")
			if !ok {
				return fmt.Errorf("invalid override %q, expected category=mode", override)
			}
			settings.CategoryOverrides[category] = domain.CategorizationMode(mode)
		}

		if err := api.ConfigureCategorization(cmd.Context(), settings); err != nil {
			return err
		}

		fmt.Println("Settings saved.")
		return printJSON(settings)
	},
}

func init() {
	settingsSetCmd.Flags().BoolVar(&setUseSubcategories, "use-subcategories", true, "group skills under subcategories")
	settingsSetCmd.Flags().IntVar(&setMinSkills, "min-skills", 3, "minimum skills before a subcategory forms")
	settingsSetCmd.Flags().StringArrayVar(&setOverrides, "override", nil, "per-category mode override (category=mode, repeatable)")

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
