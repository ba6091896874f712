package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/models"
	"github.com/scripthub/scripthub-cli/pkg/project"
	"github.com/scripthub/scripthub-cli/pkg/store"
)

// CommandContext wires the storage stack for one command invocation.
type CommandContext struct {
	KV       store.KeyValueStore
	Index    *project.Index
	Content  store.ContentStore
	Settings *models.Settings
	Logger   zerolog.Logger

	remote *store.RemoteContentStore
}

// NewCommandContext opens the store in the current directory. It fails
// when no .scripthub directory exists; commands surface that as a hint to
// run init first.
func NewCommandContext(verbose bool) (*CommandContext, error) {
	if _, err := os.Stat(store.ScriptHubDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("no %s directory found. Run 'scripthub init' first", store.ScriptHubDir)
	}

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	kv, err := store.NewFileStore(".")
	if err != nil {
		return nil, err
	}

	settings, err := store.ReadSettings(kv)
	if err != nil {
		return nil, err
	}

	index, err := project.NewIndex(kv, logger)
	if err != nil {
		return nil, err
	}

	ctx := &CommandContext{
		KV:       kv,
		Index:    index,
		Settings: settings,
		Logger:   logger,
	}

	// Content lives next to the metadata by default; a configured remote
	// endpoint swaps in the alternate backend without changing anything
	// upstream.
	if settings.Remote.URL != "" {
		remote, err := store.ConnectRemote(settings.Remote.URL, logger)
		if err != nil {
			return nil, err
		}
		ctx.remote = remote
		ctx.Content = remote
	} else {
		ctx.Content = store.NewContentStore(kv)
	}

	return ctx, nil
}

// Close releases the remote connection, if any.
func (c *CommandContext) Close() error {
	if c.remote != nil {
		return c.remote.Close()
	}
	return nil
}

// RequireProject fails unless a project is currently open.
func (c *CommandContext) RequireProject() error {
	if c.Index.GetCurrentProject() == nil {
		return fmt.Errorf("no project is open. Run 'scripthub create project <name>' first")
	}
	return nil
}
