package terminal

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/de-tools/dashboard/pkg/client"
	"github.com/de-tools/dashboard/pkg/runtime/terminal/commands"
	"github.com/de-tools/dashboard/pkg/runtime/terminal/export"
)

const (
	EnvPrefix     = "DASHBOARD"
	DefaultServer = "http://localhost:5005"
)

// CLI represents the command-line interface
type CLI struct {
	viper    *viper.Viper
	reporter *export.Reporter
	factory  commands.APIFactory
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Factory overrides the HTTP client built from --server and --token.
	Factory commands.APIFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cli := &CLI{
		viper:    v,
		reporter: export.NewReporter(opts.Output),
		factory:  opts.Factory,
	}
	if cli.factory == nil {
		cli.factory = cli.newClient
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the command line given by args.
func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newClient() commands.API {
	return client.New(cli.viper.GetString("server"), cli.viper.GetString("token"))
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Manage the dashboard's Power BI reports and logo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("server", DefaultServer, "Dashboard server base URL (env DASHBOARD_SERVER)")
	cmd.PersistentFlags().String("token", "", "Bearer token from `login` (env DASHBOARD_TOKEN)")
	_ = cli.viper.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = cli.viper.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))

	cmd.AddCommand(commands.NewLoginCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewReportsCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewLogoCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewConfigCmd(cli.factory, cli.reporter))

	return cmd
}
