// Package rootcmd wires the root cobra.Command for the portfolio binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	hashpwcmd "portfolio.site/cmd/portfolio/hashpw"
	seedcmd "portfolio.site/cmd/portfolio/seed"
	servecmd "portfolio.site/cmd/portfolio/serve"
	"portfolio.site/cmd/portfolio/shared"
)

// New creates and returns the root cobra.Command.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site with a small content editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.ContentPath, "content", "",
		"Path to the content JSON file (default: $CONTENT_PATH or data/content.json)",
	)

	root.AddCommand(
		servecmd.New(ctx).Cmd(),
		seedcmd.New(ctx).Cmd(),
		hashpwcmd.New().Cmd(),
	)

	return root
}
