package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dashboard/pkg/runtime/terminal/export"
)

type LoginCmd struct {
	username string
	password string
	factory  APIFactory
	reporter *export.Reporter
}

func NewLoginCmd(factory APIFactory, reporter *export.Reporter) *cobra.Command {
	lc := &LoginCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a bearer token for mutating commands",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.username, "username", "", "Admin username")
	cmd.Flags().StringVar(&lc.password, "password", "", "Admin password")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (lc *LoginCmd) run(cmd *cobra.Command, _ []string) error {
	token, err := lc.factory().Login(cmd.Context(), lc.username, lc.password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return lc.reporter.Token(token)
}
