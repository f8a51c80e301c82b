package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/toolapi"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   "Convert a length between m, km, ft and mi",
		Example: "  utools convert 1500 m km",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("please enter a valid positive number: %q", args[0])
			}

			api, err := a.client(catalog.UnitConverterID)
			if err != nil {
				return err
			}
			req := dto.ConvertRequest{Value: value, From: args[1], To: args[2]}
			resp, err := toolapi.Post[dto.ConvertResponse](cmd.Context(), api, "/convert", req)
			if err != nil {
				return errors.New(toolapi.Detail(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				headerText("Result:"), successText(strconv.FormatFloat(resp.Result, 'f', -1, 64)), req.To)
			return nil
		},
	}
}
