// cli/permissions.go
package cli

import (
	"github.com/deploymenttheory/go-graph-user-search/manifest"
	"github.com/spf13/cobra"
)

func newPermissionsCommand(_ *app) *cobra.Command {
	var file, output string

	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Print the API permissions an administrator must grant",
		Long: `Prints the {resource, scope} pairs the tool needs. The list is informational:
granting them is done by a tenant administrator outside this tool.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := manifest.Default()
			if file != "" {
				loaded, err := manifest.Load(file)
				if err != nil {
					return err
				}
				m = loaded
			}
			return m.Render(cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the permissions from a package-solution.json file")
	cmd.Flags().StringVarP(&output, "output", "o", manifest.FormatTable, "output format: table, json or yaml")
	return cmd
}
