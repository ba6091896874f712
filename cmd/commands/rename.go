package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <script> <new-name>",
		Short: "Rename a script",
		Long: `Rename a script in the current project. The script keeps its id and
content; only the display name changes.

Examples:
  scripthub rename scene1 "opening scene"`,
		Args: cobra.ExactArgs(2),
		RunE: runRename,
	}
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(false)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.RequireProject(); err != nil {
		return err
	}

	file, err := resolveScript(ctx, args[0])
	if err != nil {
		return err
	}

	if !ctx.Index.RenameFile(file.ID, args[1]) {
		return fmt.Errorf("failed to rename %q", args[0])
	}

	cli.PrintSuccess("Renamed %q to %q", file.Name, args[1])
	return nil
}
