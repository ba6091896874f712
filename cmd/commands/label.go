package commands

import (
	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
)

var labelRemove bool

// NewLabelCommand creates the label command
func NewLabelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label <script> <label>",
		Short: "Attach or remove a script label",
		Long: `Attach a label to a script in the current project, or remove one with
--remove. Labels are normalized to lowercase-hyphenated form.

Examples:
  scripthub label scene1 draft
  scripthub label scene1 "Act One"
  scripthub label scene1 draft --remove`,
		Args: cobra.ExactArgs(2),
		RunE: runLabel,
	}
	cmd.Flags().BoolVar(&labelRemove, "remove", false, "Remove the label instead of adding it")
	return cmd
}

func runLabel(cmd *cobra.Command, args []string) error {
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

	if labelRemove {
		if err := ctx.Index.UnlabelFile(file.ID, args[1]); err != nil {
			return err
		}
		cli.PrintSuccess("Removed label %q from %q", args[1], file.Name)
		return nil
	}

	if err := ctx.Index.LabelFile(file.ID, args[1]); err != nil {
		return err
	}
	cli.PrintSuccess("Labeled %q with %q", file.Name, args[1])
	return nil
}
