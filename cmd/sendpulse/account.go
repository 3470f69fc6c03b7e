package main

import (
	"context"
	"strings"

	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/spf13/cobra"
)

func newBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [CURRENCY]",
		Short: "Show the account balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			currency := ""
			if len(args) == 1 {
				currency = args[0]
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.GetBalance(ctx, currency)
			})
		},
	}
}

func newBlacklistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the email blacklist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List blacklisted addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.GetBlackList(ctx)
			})
		},
	})

	var comment string
	add := &cobra.Command{
		Use:   "add EMAIL...",
		Short: "Blacklist addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.AddToBlackList(ctx, strings.Join(args, ","), comment)
			})
		},
	}
	add.Flags().StringVar(&comment, "comment", "", "Reason for blacklisting")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove EMAIL...",
		Short: "Remove addresses from the blacklist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.RemoveFromBlackList(ctx, strings.Join(args, ","))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup EMAIL",
		Short: "Show the books and campaign stats of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.EmailStatByCampaigns(ctx, args[0])
			})
		},
	})

	return cmd
}
