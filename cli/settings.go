// cli/settings.go
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-graph-user-search/config"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redacted = "********"

func newSettingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
	}

	var output string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSettings(cmd, a.configPath, a.cfg, output)
		},
	}
	show.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml or json")

	setMode := &cobra.Command{
		Use:       "set-mode <aad|graph>",
		Short:     "Choose which client later searches use",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"aad", "graph"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := usersearch.ParseClientMode(args[0])
			if err != nil {
				return err
			}
			if err := a.saveMode(mode); err != nil {
				return fmt.Errorf("saving client mode: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client mode set to %s in %s\n", mode, a.configPath)
			return nil
		},
	}

	cmd.AddCommand(show, setMode)
	return cmd
}

func writeSettings(cmd *cobra.Command, path string, cfg *config.Config, output string) error {
	masked := *cfg
	if masked.Auth.ClientSecret != "" {
		masked.Auth.ClientSecret = redacted
	}
	if masked.Auth.CertificatePassword != "" {
		masked.Auth.CertificatePassword = redacted
	}

	data, err := json.MarshalIndent(&masked, "", "  ")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		_, err = fmt.Fprintln(out, string(data))
		return err
	case outputYAML:
		var generic map[string]interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		fmt.Fprintf(out, "# %s\n", path)
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output %q: expected yaml or json", output)
	}
}
