package main

import (
	"context"
	"fmt"
	"os"

	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/spf13/cobra"
)

func newCampaignsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage bulk email campaigns",
	}

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.ListCampaigns(ctx, limit, offset)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum number of campaigns")
	list.Flags().IntVar(&offset, "offset", 0, "Number of campaigns to skip")

	cmd.AddCommand(list)
	cmd.AddCommand(campaignIDCommand("info ID", "Show a campaign", (*sendpulse.Client).GetCampaignInfo))
	cmd.AddCommand(campaignIDCommand("countries ID", "Show opens by country", (*sendpulse.Client).CampaignStatByCountries))
	cmd.AddCommand(campaignIDCommand("referrals ID", "Show clicks by link", (*sendpulse.Client).CampaignStatByReferrals))
	cmd.AddCommand(campaignIDCommand("cancel ID", "Cancel a scheduled campaign", (*sendpulse.Client).CancelCampaign))
	cmd.AddCommand(newCampaignsCreateCommand())

	return cmd
}

func campaignIDCommand(use, short string, call func(*sendpulse.Client, context.Context, int) (*sendpulse.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return call(c, ctx, id)
			})
		},
	}
}

func newCampaignsCreateCommand() *cobra.Command {
	var (
		params   sendpulse.CreateCampaignParams
		bodyFile string
		books    []int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign from an HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(bodyFile)
			if err != nil {
				return fmt.Errorf("failed to read body: %w", err)
			}
			params.Body = string(body)

			if len(books) == 1 {
				params.BookID = books[0]
			} else {
				params.BookIDs = books
			}

			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.CreateCampaign(ctx, params)
			})
		},
	}

	cmd.Flags().StringVar(&params.SenderName, "sender-name", "", "Sender name")
	cmd.Flags().StringVar(&params.SenderEmail, "sender-email", "", "Sender address")
	cmd.Flags().StringVar(&params.Subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&params.Name, "name", "", "Campaign name")
	cmd.Flags().StringVar(&bodyFile, "body", "", "Path to the HTML body")
	cmd.Flags().IntSliceVar(&books, "book", nil, "Address book id, repeatable")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List or show email templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List email templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.ListEmailTemplates(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show an email template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.GetEmailTemplate(ctx, args[0])
			})
		},
	})

	return cmd
}

func newSendersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "senders",
		Short: "Manage sender addresses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List senders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.ListSenders(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME EMAIL",
		Short: "Add a sender; an activation code is mailed to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.AddSender(ctx, args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove EMAIL",
		Short: "Remove a sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.RemoveSender(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "activate EMAIL CODE",
		Short: "Activate a sender",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.ActivateSender(ctx, args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "resend-code EMAIL",
		Short: "Mail the activation code again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.GetSenderActivationMail(ctx, args[0])
			})
		},
	})

	return cmd
}
