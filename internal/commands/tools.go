package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/toolapi"
)

func newToolsCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := a.catalog.All()
			if !local {
				api := toolapi.New(a.cfg.APIBaseURL, "", toolapi.WithLogger(a.log))
				remote, err := toolapi.Get[[]catalog.Tool](cmd.Context(), api, "/tools")
				if err != nil {
					return errors.New(toolapi.Detail(err))
				}
				tools = remote
			}

			out := cmd.OutOrStdout()
			for _, t := range tools {
				fmt.Fprintf(out, "%s %s  %s\n", t.Icon, headerText(t.Name), t.ID)
				fmt.Fprintf(out, "   %s · %s\n", t.Category, t.Description)
				if len(t.Tags) > 0 {
					fmt.Fprintf(out, "   #%s\n", strings.Join(t.Tags, " #"))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "list the catalog built into this binary instead of asking the API")
	return cmd
}
