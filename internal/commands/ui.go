package commands

import (
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/utools/internal/toolapi"
	"github.com/GregMSThompson/utools/internal/web"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive tool browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, a)
		},
	}
}

func runUI(cmd *cobra.Command, a *app) error {
	loader := web.DefaultLoader(a.cfg.APIBaseURL, toolapi.WithLogger(a.log))
	a.log.Info("starting ui", "api", a.cfg.APIBaseURL)
	return web.Run(cmd.Context(), web.NewPage(a.catalog, loader))
}
