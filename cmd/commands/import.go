package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import an external script file",
		Long: `Import a plain-text or .fountain file into the current project. The
file gets a fresh identity; the original on disk is left alone.

Examples:
  scripthub import drafts/heist.fountain`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(false)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.RequireProject(); err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	fileID, err := ctx.Index.Privileged().CreateFile(name)
	if err != nil {
		return fmt.Errorf("failed to create script: %w", err)
	}

	if err := ctx.Content.SaveText(fileID, string(data)); err != nil {
		return fmt.Errorf("failed to store imported content: %w", err)
	}

	cli.PrintSuccess("Imported %s as %q (%s)", path, name, fileID)
	return nil
}
