// cli/root.go

/* Package cli implements the graphusersearch command line: one-off searches, the settings panel
(client mode), the permission manifest and the interactive search screen. */
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/deploymenttheory/go-graph-user-search/config"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/tui"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
	"github.com/spf13/cobra"
)

// ConfigPathEnv overrides the default configuration file location.
const ConfigPathEnv = "GRAPH_SEARCH_CONFIG"

// app carries the state shared by the commands of one invocation. The function fields are
// replaced in tests.
type app struct {
	configPath string
	cfg        *config.Config

	newLogger   func(cfg *config.Config, toFile bool) (logger.Logger, error)
	newSearcher func(cfg *config.Config, log logger.Logger) (tui.Searcher, error)
	runTUI      func(ctx context.Context, searcher tui.Searcher, save tui.ModeSaver, log logger.Logger) error
}

func newApp() *app {
	return &app{
		newLogger: func(cfg *config.Config, toFile bool) (logger.Logger, error) {
			return cfg.BuildLogger(toFile)
		},
		newSearcher: func(cfg *config.Config, log logger.Logger) (tui.Searcher, error) {
			return cfg.NewComponent(log)
		},
		runTUI: func(ctx context.Context, searcher tui.Searcher, save tui.ModeSaver, log logger.Logger) error {
			return tui.Run(ctx, searcher, save, log)
		},
	}
}

// DefaultConfigPath returns $GRAPH_SEARCH_CONFIG, or config.json under the user config directory.
func DefaultConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "graphusersearch", "config.json")
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "graphusersearch",
		Short: "Search Microsoft Graph users by name",
		Long: `graphusersearch looks up Azure AD users whose given name, surname or display name
equals the search text. Requests go through one of two clients, selected by the
persisted client mode:

  aad    generic authenticated HTTP client with a hand-built OData query
  graph  typed Microsoft Graph client with a fluent query builder`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadEffectiveConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", DefaultConfigPath(), "path to the JSON configuration file")

	root.AddCommand(
		newSearchCommand(a),
		newSettingsCommand(a),
		newPermissionsCommand(a),
		newTUICommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// loadFileConfig reads the configuration file only. A missing file yields an empty config.
func (a *app) loadFileConfig() (*config.Config, error) {
	if _, err := os.Stat(a.configPath); errors.Is(err, fs.ErrNotExist) {
		return &config.Config{}, nil
	}
	return config.LoadConfigFromFile(a.configPath)
}

// loadEffectiveConfig layers environment overrides and defaults on top of the file.
func (a *app) loadEffectiveConfig() (*config.Config, error) {
	cfg, err := a.loadFileConfig()
	if err != nil {
		return nil, err
	}
	if cfg, err = config.LoadConfigFromEnv(cfg); err != nil {
		return nil, err
	}
	config.SetDefaultValues(cfg)
	if err := cfg.Validate(false); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// saveMode persists mode to the configuration file without writing defaults or environment
// overrides into it.
func (a *app) saveMode(mode usersearch.ClientMode) error {
	cfg, err := a.loadFileConfig()
	if err != nil {
		return err
	}
	cfg.ClientMode = mode
	if err := config.SaveConfigToFile(cfg, a.configPath); err != nil {
		return err
	}
	if a.cfg != nil {
		a.cfg.ClientMode = mode
	}
	return nil
}
