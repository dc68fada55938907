package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dashboard/pkg/runtime/terminal/export"
)

func NewConfigCmd(factory APIFactory, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the site configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := factory()
			record, err := client.GetConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch config: %w", err)
			}
			return reporter.Config(record, client.AssetURL)
		},
	})

	return cmd
}
