package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
	"github.com/scripthub/scripthub-cli/pkg/models"
)

var showCopy bool

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <script>",
		Short: "Print a script's content",
		Long: `Print the content of a script in the current project. The script may
be referenced by name or by id.

Examples:
  scripthub show scene1
  scripthub show scene1 --copy`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	cmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the content to the clipboard instead of printing")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	text, err := ctx.Content.LoadText(file.ID)
	if err != nil {
		return fmt.Errorf("failed to load script content: %w", err)
	}

	if showCopy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %q to clipboard", file.Name)
		return nil
	}

	fmt.Print(text)
	return nil
}

// resolveScript finds a file in the current project by id or name.
func resolveScript(ctx *cli.CommandContext, ref string) (*models.File, error) {
	if f := ctx.Index.GetFile(ref); f != nil {
		return f, nil
	}
	for _, f := range ctx.Index.ListFiles() {
		if f.Name == ref {
			found := f
			return &found, nil
		}
	}
	return nil, fmt.Errorf("no script %q in the current project", ref)
}
