package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <project|script> <name>",
		Short: "Create a new project or script",
		Long: `Create a new project, or a new script inside the current project.

Examples:
  # Start a new project (it becomes the current project)
  scripthub create project "Western Feature"

  # Create a script with a starter scene
  scripthub create script "scene1"`,
		Args: cobra.ExactArgs(2),
		RunE: runCreate,
	}
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(false)
	if err != nil {
		return err
	}
	defer ctx.Close()

	kind, name := args[0], args[1]

	switch kind {
	case "project":
		id, err := ctx.Index.CreateProject(name)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		cli.PrintSuccess("Created project %q (%s)", name, id)
		return nil

	case "script":
		if err := ctx.RequireProject(); err != nil {
			return err
		}

		// Explicit creation flow: this is the privileged path, the same
		// one the editor's save-as uses.
		fileID, err := ctx.Index.Privileged().CreateFile(name)
		if err != nil {
			return fmt.Errorf("failed to create script: %w", err)
		}

		if err := ctx.Content.SaveText(fileID, starterScript(name)); err != nil {
			return fmt.Errorf("failed to write starter content: %w", err)
		}

		cli.PrintSuccess("Created script %q (%s)", name, fileID)
		return nil
	}

	return fmt.Errorf("unknown kind %q: expected 'project' or 'script'", kind)
}

func starterScript(title string) string {
	return fmt.Sprintf(`Title: %s
Author: You

INT. SETTING - DAY

Your script begins here.
`, title)
}
