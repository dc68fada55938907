package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/de-tools/dashboard/pkg/runtime/terminal/export"
	"github.com/de-tools/dashboard/pkg/widgets"
)

type LogoCmd struct {
	factory  APIFactory
	reporter *export.Reporter
}

func NewLogoCmd(factory APIFactory, reporter *export.Reporter) *cobra.Command {
	lc := &LogoCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Manage the custom logo",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a new logo, replacing the current one",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.upload,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the custom logo",
		Args:  cobra.NoArgs,
		RunE:  lc.remove,
	})

	return cmd
}

func (lc *LogoCmd) upload(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read logo: %w", err)
	}

	client := lc.factory()
	notifier := export.NewNotifier(lc.reporter.Writer())
	settings := widgets.NewSettings(client, notifier)
	settings.SelectFile(filepath.Base(args[0]), content)
	settings.UploadLogo(cmd.Context())
	if err := notifier.Err(); err != nil {
		return err
	}

	fmt.Fprintf(lc.reporter.Writer(), "logo url: %s\n", client.AssetURL(settings.CustomLogo()))
	return nil
}

func (lc *LogoCmd) remove(cmd *cobra.Command, _ []string) error {
	notifier := export.NewNotifier(lc.reporter.Writer())
	settings := widgets.NewSettings(lc.factory(), notifier)
	settings.RemoveLogo(cmd.Context())
	return notifier.Err()
}
