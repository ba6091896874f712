package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scripthub/scripthub-cli/cmd/commands"
	"github.com/scripthub/scripthub-cli/pkg/store"
	"github.com/scripthub/scripthub-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scripthub",
	Short: "Terminal-based screenplay editor and project manager",
	Long:  `ScriptHub is a terminal-based screenplay editor. Scripts live in projects, content is stored locally (or against a remote endpoint) and the editor guards you against losing unsaved work.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Check if .scripthub directory exists
		if _, err := os.Stat(store.ScriptHubDir); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", store.ScriptHubDir)
			fmt.Fprintf(os.Stderr, "Please run 'scripthub init' first to initialize a workspace.\n")
			os.Exit(1)
		}

		kv, err := store.NewFileStore(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to open the local store: %v\n", err)
			os.Exit(1)
		}

		logger := zerolog.Nop()

		settings, err := store.ReadSettings(kv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to read settings: %v\n", err)
			os.Exit(1)
		}

		var content store.ContentStore
		if settings.Remote.URL != "" {
			remote, err := store.ConnectRemote(settings.Remote.URL, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: Failed to reach the remote store: %v\n", err)
				os.Exit(1)
			}
			defer remote.Close()
			content = remote
		} else {
			content = store.NewContentStore(kv)
		}

		app, err := tui.NewApp(kv, content, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize: %v\n", err)
			os.Exit(1)
		}

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ScriptHub workspace",
	Long:  `Creates the .scripthub storage directory in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing ScriptHub workspace in %s...\n", cwd)

		if _, err := store.NewFileStore("."); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize workspace: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Println("✓ Created .scripthub storage")
		fmt.Println("✓ You can now create projects and scripts!")
		fmt.Println("\nRun 'scripthub' to start the interactive editor.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ScriptHub",
	Long:  `Display the current version of the ScriptHub CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ScriptHub version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewRenameCommand())
	rootCmd.AddCommand(commands.NewLabelCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
