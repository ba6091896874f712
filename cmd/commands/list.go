package commands

import (
	"fmt"
	"sort"
	"strings"

	gotree "github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/internal/cli"
)

var listTree bool

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects and scripts",
		Long: `List all projects and, for the current project, its scripts.

Examples:
  scripthub list
  scripthub list --tree`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().BoolVar(&listTree, "tree", false, "Render projects and scripts as a tree")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(false)
	if err != nil {
		return err
	}
	defer ctx.Close()

	projects := ctx.Index.ListProjects()
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	current := ctx.Index.GetCurrentProject()

	if listTree {
		root := gotree.New("scripthub")
		for _, p := range projects {
			label := p.Name
			if current != nil && p.ID == current.ID {
				label += " (current)"
			}
			node := root.Add(label)
			if current != nil && p.ID == current.ID {
				files := ctx.Index.ListFiles()
				sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
				for _, f := range files {
					entry := f.Name
					if len(f.Labels) > 0 {
						entry += "  #" + strings.Join(f.Labels, " #")
					}
					node.Add(entry)
				}
			}
		}
		fmt.Print(root.Print())
		return nil
	}

	if len(projects) == 0 {
		cli.PrintInfo("No projects yet. Run 'scripthub create project <name>'.")
		return nil
	}

	for _, p := range projects {
		marker := " "
		if current != nil && p.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  (opened %s)\n", marker, p.Name, p.LastOpened.Format("2006-01-02 15:04"))
	}

	if current != nil {
		files := ctx.Index.ListFiles()
		sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
		fmt.Printf("\nScripts in %q:\n", current.Name)
		if len(files) == 0 {
			fmt.Println("  (none)")
		}
		for _, f := range files {
			line := fmt.Sprintf("  %s  [%s]  modified %s", f.Name, f.ID, f.Modified.Format("2006-01-02 15:04"))
			if len(f.Labels) > 0 {
				line += "  #" + strings.Join(f.Labels, " #")
			}
			fmt.Println(line)
		}
	}

	return nil
}
