// cli/search.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newSearchCommand(a *app) *cobra.Command {
	var mode, output string

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Run one search and print the matching users",
		Example: `  graphusersearch search alice
  graphusersearch search "o'brien" --mode graph --output json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			if mode != "" {
				parsed, err := usersearch.ParseClientMode(mode)
				if err != nil {
					return err
				}
				a.cfg.ClientMode = parsed
			}

			switch output {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unsupported output %q: expected table, json or yaml", output)
			}

			if msg := usersearch.ValidateSearchQuery(query); msg != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}

			log, err := a.newLogger(a.cfg, false)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			searcher, err := a.newSearcher(a.cfg, log)
			if err != nil {
				return err
			}
			if err := searcher.Search(cmd.Context(), query); err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return writeRecords(cmd.OutOrStdout(), searcher.Results(), output)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "client mode for this search only (aad or graph)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func writeRecords(w io.Writer, records []usersearch.UserRecord, output string) error {
	switch output {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case outputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return err
		}
		return encoder.Close()
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No users found.")
		return err
	}

	t := table.New().Headers("DISPLAY NAME", "MAIL", "USER PRINCIPAL NAME")
	for _, record := range records {
		t.Row(record.DisplayName, record.Mail, record.UserPrincipalName)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
