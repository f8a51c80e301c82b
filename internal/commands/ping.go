package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/toolapi"
	"github.com/GregMSThompson/utools/internal/web"
)

func newPingCmd(a *app) *cobra.Command {
	var count string

	cmd := &cobra.Command{
		Use:   "ping [host]",
		Short: "Send one ICMP echo from the API server to host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := "google.com"
			if len(args) == 1 {
				host = args[0]
			}

			api, err := a.client(catalog.NetworkPingID)
			if err != nil {
				return err
			}
			req := dto.PingRequest{Host: host, Count: web.ClampCount(count)}
			resp, err := toolapi.Post[dto.PingResponse](cmd.Context(), api, "/run", req)
			if err != nil {
				return errors.New(toolapi.Detail(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", headerText(resp.Host), time.Now().Format("15:04:05"))
			if resp.Success {
				fmt.Fprintln(out, successText("RTT: "+strconv.FormatInt(resp.RTTMs, 10)+"ms"))
				return nil
			}
			fmt.Fprintln(out, failureText(resp.Error))
			return nil
		},
	}
	cmd.Flags().StringVarP(&count, "count", "n", "4", "echo count (1-10, accepted by the API)")
	return cmd
}
