package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dashboard/pkg/runtime/terminal/export"
	"github.com/de-tools/dashboard/pkg/widgets"
)

type ReportsCmd struct {
	name     string
	embedURL string
	factory  APIFactory
	reporter *export.Reporter
}

func NewReportsCmd(factory APIFactory, reporter *export.Reporter) *cobra.Command {
	rc := &ReportsCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage embedded Power BI reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reports",
		Args:  cobra.NoArgs,
		RunE:  rc.list,
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a report",
		Args:  cobra.NoArgs,
		RunE:  rc.add,
	}
	add.Flags().StringVar(&rc.name, "name", "", "Report name")
	add.Flags().StringVar(&rc.embedURL, "embed-url", "", "Power BI embed URL")
	cmd.AddCommand(add)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a report, keeping fields that are not given",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.update,
	}
	update.Flags().StringVar(&rc.name, "name", "", "New report name")
	update.Flags().StringVar(&rc.embedURL, "embed-url", "", "New Power BI embed URL")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.delete,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "embed",
		Short: "Render the home page report section as HTML",
		Args:  cobra.NoArgs,
		RunE:  rc.embed,
	})

	return cmd
}

func (rc *ReportsCmd) settings() (*widgets.Settings, *export.Notifier) {
	notifier := export.NewNotifier(rc.reporter.Writer())
	return widgets.NewSettings(rc.factory(), notifier), notifier
}

func (rc *ReportsCmd) list(cmd *cobra.Command, _ []string) error {
	reports, err := rc.factory().ListReports(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	return rc.reporter.Reports(reports)
}

func (rc *ReportsCmd) add(cmd *cobra.Command, _ []string) error {
	settings, notifier := rc.settings()
	settings.Form = widgets.ReportForm{Name: rc.name, EmbedURL: rc.embedURL}
	settings.Submit(cmd.Context())
	if err := notifier.Err(); err != nil {
		return err
	}
	return rc.reporter.Reports(settings.Reports())
}

func (rc *ReportsCmd) update(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	settings, notifier := rc.settings()
	if err := settings.Load(ctx); err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}
	if !settings.StartEdit(id) {
		return fmt.Errorf("report %q not found", id)
	}
	if cmd.Flags().Changed("name") {
		settings.EditForm.Name = rc.name
	}
	if cmd.Flags().Changed("embed-url") {
		settings.EditForm.EmbedURL = rc.embedURL
	}

	settings.SaveEdit(ctx)
	if err := notifier.Err(); err != nil {
		return err
	}
	return rc.reporter.Reports(settings.Reports())
}

func (rc *ReportsCmd) delete(cmd *cobra.Command, args []string) error {
	settings, notifier := rc.settings()
	settings.Delete(cmd.Context(), args[0])
	if err := notifier.Err(); err != nil {
		return err
	}
	return rc.reporter.Reports(settings.Reports())
}

func (rc *ReportsCmd) embed(cmd *cobra.Command, _ []string) error {
	display := widgets.NewDisplay(rc.factory())
	display.Mount(cmd.Context())
	return rc.reporter.Embed(display.Frames())
}
