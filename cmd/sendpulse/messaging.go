package main

import (
	"context"
	"fmt"
	"os"

	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/spf13/cobra"
)

func newSMTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smtp",
		Short: "Send and inspect transactional mail",
	}

	var filter sendpulse.SMTPListEmailsParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List sent messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMTPListEmails(ctx, filter)
			})
		},
	}
	list.Flags().IntVar(&filter.Limit, "limit", 0, "Maximum number of messages")
	list.Flags().IntVar(&filter.Offset, "offset", 0, "Number of messages to skip")
	list.Flags().StringVar(&filter.From, "from", "", "Start date")
	list.Flags().StringVar(&filter.To, "to", "", "End date")
	list.Flags().StringVar(&filter.Sender, "sender", "", "Sender address")
	list.Flags().StringVar(&filter.Recipient, "recipient", "", "Recipient address")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "domains",
		Short: "List allowed sender domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMTPListAllowedDomains(ctx)
			})
		},
	})
	cmd.AddCommand(newSMTPSendCommand())

	return cmd
}

func newSMTPSendCommand() *cobra.Command {
	var (
		email    sendpulse.SMTPEmail
		htmlFile string
		to       []string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if htmlFile != "" {
				html, err := os.ReadFile(htmlFile)
				if err != nil {
					return fmt.Errorf("failed to read html: %w", err)
				}
				email.HTML = string(html)
			}
			for _, addr := range to {
				email.To = append(email.To, sendpulse.Contact{Email: addr})
			}

			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMTPSendMail(ctx, &email)
			})
		},
	}

	cmd.Flags().StringVar(&email.Subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&email.Text, "text", "", "Plain text body")
	cmd.Flags().StringVar(&htmlFile, "html", "", "Path to the HTML body")
	cmd.Flags().StringVar(&email.From.Name, "from-name", "", "Sender name")
	cmd.Flags().StringVar(&email.From.Email, "from", "", "Sender address")
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address, repeatable")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newSMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send SMS campaigns",
	}

	var params sendpulse.SMSSendParams
	send := &cobra.Command{
		Use:   "send PHONE...",
		Short: "Send a text to phone numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Phones = args
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMSSend(ctx, params)
			})
		},
	}
	send.Flags().StringVar(&params.Sender, "sender", "", "Sender name")
	send.Flags().StringVar(&params.Body, "body", "", "Message text")
	send.Flags().StringVar(&params.Date, "date", "", "Send time, immediately when empty")
	send.Flags().IntVar(&params.Transliterate, "transliterate", 0, "Transliterate the text (1 to enable)")
	cmd.AddCommand(send)

	var cost sendpulse.SMSCostParams
	costCmd := &cobra.Command{
		Use:   "cost [PHONE...]",
		Short: "Price a campaign to a book or phone numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cost.Phones = args
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMSGetCampaignCost(ctx, cost)
			})
		},
	}
	costCmd.Flags().StringVar(&cost.Sender, "sender", "", "Sender name")
	costCmd.Flags().StringVar(&cost.Body, "body", "", "Message text")
	costCmd.Flags().IntVar(&cost.BookID, "book", 0, "Address book id")
	cmd.AddCommand(costCmd)

	var dateFrom, dateTo string
	campaigns := &cobra.Command{
		Use:   "campaigns",
		Short: "List SMS campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.SMSGetListCampaigns(ctx, dateFrom, dateTo)
			})
		},
	}
	campaigns.Flags().StringVar(&dateFrom, "from", "", "Start date")
	campaigns.Flags().StringVar(&dateTo, "to", "", "End date")
	cmd.AddCommand(campaigns)

	cmd.AddCommand(campaignIDCommand("cancel ID", "Cancel an SMS campaign", (*sendpulse.Client).SMSCancelCampaign))

	return cmd
}
