package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/spf13/cobra"
)

// newCallCommand sends an arbitrary request through the refreshing request
// layer, for endpoints without a dedicated command.
func newCallCommand() *cobra.Command {
	var noAuth bool

	cmd := &cobra.Command{
		Use:   "call METHOD PATH [JSON]",
		Short: "Send a raw API request",
		Example: `  sendpulse call GET addressbooks
  sendpulse call POST addressbooks '{"bookName":"News"}'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])

			var body interface{}
			if len(args) == 3 {
				if !json.Valid([]byte(args[2])) {
					return fmt.Errorf("body is not valid JSON")
				}
				body = []byte(args[2])
			}

			if noAuth {
				cc := getCliContext(cmd)
				res, err := cc.Client.Request(cmd.Context(), args[1], method, body, false)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			}

			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.Request(ctx, args[1], method, body, true)
			})
		},
	}

	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "Send without the bearer token")
	return cmd
}
