// cli/tui.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive search screen",
		Long: `Opens a terminal screen with a search field and a result table.

Keyboard shortcuts:
  Enter    Search
  Ctrl+T   Switch between the aad and graph clients (saved to the config file)
  ↑/↓      Move through results
  Esc      Quit

Logs are written to a file while the screen is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.newLogger(a.cfg, true)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			searcher, err := a.newSearcher(a.cfg, log)
			if err != nil {
				return err
			}

			log.Info("Starting search screen", zap.String("mode", a.cfg.ClientMode.String()))
			if err := a.runTUI(cmd.Context(), searcher, a.saveMode, log); err != nil {
				return fmt.Errorf("running search screen: %w", err)
			}
			return nil
		},
	}
}
