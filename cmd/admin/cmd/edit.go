package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"go-portfolio-console/internal/client"
	"go-portfolio-console/internal/domain"
	"go-portfolio-console/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <section>",
	Short: "Edit a section in $EDITOR and save it",
	Long: `edit fetches the section, opens it in $EDITOR as formatted JSON and
submits the result. Validation failures keep the draft file on disk so the
edit is not lost.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !domain.KnownSection(name) {
			return fmt.Errorf("unknown section %q (valid: %v)", name, domain.SectionNames)
		}

		if err := requireServer(cmd.Context()); err != nil {
			return err
		}

		tokens, err := newTokenProvider()
		if err != nil {
			return err
		}
		token := tokens.Token()
		if token == "" {
			return fmt.Errorf("not logged in, run: portfolio-admin login")
		}

		store := client.NewStore(apiURL)
		confirmed, err := store.FetchSection(cmd.Context(), name)
		if err != nil {
			return err
		}

		ed := editor.New(store, name, confirmed)
		if err := ed.Edit(); err != nil {
			return err
		}

		draftPath, err := writeDraftFile(name, confirmed)
		if err != nil {
			return err
		}

		if err := openInEditor(draftPath); err != nil {
			_ = ed.Cancel()
			return err
		}

		draft, err := os.ReadFile(draftPath)
		if err != nil {
			return err
		}
		if !json.Valid(draft) {
			return fmt.Errorf("draft is not valid JSON, kept at %s", draftPath)
		}

		if err := ed.SetDraft(draft); err != nil {
			return err
		}
		if err := ed.Submit(cmd.Context(), token); err != nil {
			return fmt.Errorf("save failed: %w (draft kept at %s)", err, draftPath)
		}

		os.Remove(draftPath)
		fmt.Printf("Section %q saved.\n", name)
		return nil
	},
}

func writeDraftFile(section string, payload json.RawMessage) (string, error) {
	indented, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("portfolio-%s.json", section))
	if err := os.WriteFile(path, append(indented, '\n'), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func openInEditor(path string) error {
	editorBin := os.Getenv("EDITOR")
	if editorBin == "" {
		editorBin = "vi"
	}

	c := exec.Command(editorBin, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editorBin, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
