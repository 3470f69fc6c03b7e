package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	booksPageSize = 100
	exportDir     = "exports"
)

func newBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage address books",
	}

	cmd.AddCommand(newBooksListCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create an address book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.CreateAddressBook(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an address book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.EditAddressBook(ctx, id, args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an address book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.RemoveAddressBook(ctx, id)
			})
		},
	})
	cmd.AddCommand(newBooksInfoCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "emails ID",
		Short: "List the addresses in a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.GetEmailsFromBook(ctx, id)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add-emails ID EMAIL...",
		Short: "Add addresses to a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			emails := make([]sendpulse.Email, 0, len(args)-1)
			for _, addr := range args[1:] {
				emails = append(emails, sendpulse.Email{Email: addr})
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.AddEmails(ctx, id, emails)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove-emails ID EMAIL...",
		Short: "Remove addresses from a book",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.RemoveEmails(ctx, id, args[1:])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cost ID",
		Short: "Estimate the cost of a campaign to a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.CampaignCost(ctx, id)
			})
		},
	})
	cmd.AddCommand(newBooksExportCommand())

	return cmd
}

func newBooksListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List address books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error) {
				return c.ListAddressBooks(ctx, limit, offset)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of books")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of books to skip")
	return cmd
}

func newBooksInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info ID...",
		Short: "Show one or more address books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			client, err := initClient(cmd)
			if err != nil {
				return err
			}

			results, err := client.GetBooksInfo(cmd.Context(), ids)
			if err != nil {
				return err
			}
			for _, res := range results {
				if err := printResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// newBooksExportCommand writes the largest address books to
// exports/<user id>.json.
func newBooksExportCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the largest address books to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 1 {
				return fmt.Errorf("--top must be at least 1, got %d", top)
			}

			cc := getCliContext(cmd)
			logger := cc.Logger

			client, err := initClient(cmd)
			if err != nil {
				return err
			}

			// Phase 1: every book, page by page
			books, err := collectAllBooks(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("failed to list address books: %w", err)
			}
			logger.Info("Phase 1 done", zap.Int("book_count", len(books)))

			// Phase 2: sort by size, keep the top entries
			sort.Slice(books, func(i, j int) bool {
				return books[i].AllEmailQty > books[j].AllEmailQty
			})
			if len(books) > top {
				books = books[:top]
			}

			// Phase 3: write the file
			if err := os.MkdirAll(exportDir, 0o755); err != nil {
				return fmt.Errorf("failed to create exports dir: %w", err)
			}
			path := filepath.Join(exportDir, cc.Config.UserID+".json")
			payload, err := json.MarshalIndent(books, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			logger.Info("Export written", zap.String("path", path), zap.Int("count", len(books)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported top %d address books to %s\n", len(books), path)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "Number of books to export")
	return cmd
}

// collectAllBooks pages through ListAddressBooks until a short page, or a
// page that adds no new book.
func collectAllBooks(ctx context.Context, client sendpulse.SendPulseClient) ([]sendpulse.BookInfo, error) {
	var all []sendpulse.BookInfo
	seen := make(map[int]bool)
	for offset := 0; ; offset += booksPageSize {
		res, err := client.ListAddressBooks(ctx, booksPageSize, offset)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, res.Body)
		}

		var page []sendpulse.BookInfo
		if err := res.Decode(&page); err != nil {
			return nil, fmt.Errorf("failed to decode address books: %w", err)
		}
		added := 0
		for _, book := range page {
			if seen[book.ID] {
				continue
			}
			seen[book.ID] = true
			all = append(all, book)
			added++
		}

		if len(page) < booksPageSize || added == 0 {
			return all, nil
		}
	}
}
