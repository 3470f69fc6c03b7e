package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/natserract/sendpulse/pkg/config"
	"github.com/natserract/sendpulse/pkg/sendpulse"
	"github.com/natserract/sendpulse/pkg/tokenstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type contextKey string

const cliContextKey contextKey = "cliContext"

// cliContext holds what every subcommand needs
type cliContext struct {
	Config *config.Config
	Client *sendpulse.Client
	Logger *zap.Logger

	pgStore *tokenstore.PostgresStore
	closed  bool
}

// Close releases what PersistentPreRunE opened. Cobra skips post-run hooks
// when a command fails, so callers run it after Execute.
func (cc *cliContext) Close() {
	if cc.closed {
		return
	}
	cc.closed = true

	if cc.pgStore != nil {
		cc.pgStore.Close()
	}
	if cc.Logger != nil {
		_ = cc.Logger.Sync()
	}
}

// Global flags
var (
	debug      bool
	apiURL     string
	storageDir string
)

// NewRootCommand creates the root cobra command and the context its
// subcommands share. Close the context once Execute returns.
func NewRootCommand() (*cobra.Command, *cliContext) {
	cc := &cliContext{}

	rootCmd := &cobra.Command{
		Use:           "sendpulse",
		Short:         "Command line client for the SendPulse REST API",
		Long:          `Calls the SendPulse REST API with credentials from the environment or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(debug)
			if err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}
			cc.Logger = logger

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			if storageDir != "" {
				cfg.TokenStorage = storageDir
			}
			cc.Config = cfg

			var opts []sendpulse.Option
			if cfg.TokenDSN != "" {
				store, err := tokenstore.NewPostgresStore(cmd.Context(), tokenstore.NewPostgresConfig(cfg.TokenDSN), logger)
				if err != nil {
					return fmt.Errorf("failed to open token database: %w", err)
				}
				cc.pgStore = store
				opts = append(opts, sendpulse.WithStore(store))
			}

			client, err := sendpulse.NewClientWithLogger(cfg, logger, opts...)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			cc.Client = client

			logger.Debug("CLI started", zap.String("command", cmd.CommandPath()))
			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, cc))
			return nil
		},
	}

	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newBooksCommand())
	rootCmd.AddCommand(newCampaignsCommand())
	rootCmd.AddCommand(newTemplatesCommand())
	rootCmd.AddCommand(newSendersCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newBlacklistCommand())
	rootCmd.AddCommand(newSMTPCommand())
	rootCmd.AddCommand(newSMSCommand())
	rootCmd.AddCommand(newCallCommand())

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable development logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override SENDPULSE_API_URL")
	rootCmd.PersistentFlags().StringVar(&storageDir, "storage", "", "Override SENDPULSE_TOKEN_STORAGE")

	return rootCmd, cc
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// getCliContext extracts the CLI context from the command context
func getCliContext(cmd *cobra.Command) *cliContext {
	return cmd.Context().Value(cliContextKey).(*cliContext)
}

// initClient makes sure the client holds a token before a command runs.
func initClient(cmd *cobra.Command) (*sendpulse.Client, error) {
	cc := getCliContext(cmd)
	if _, err := cc.Client.Init(cmd.Context()); err != nil {
		return nil, err
	}
	return cc.Client, nil
}

// printResult writes the reply as indented JSON, prefixed by its status when
// it is not a success.
func printResult(w io.Writer, res *sendpulse.Result) error {
	if !res.OK() {
		fmt.Fprintf(w, "HTTP %d\n", res.StatusCode)
	}

	var v interface{}
	if err := res.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode reply: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format reply: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// runCall is the RunE body shared by commands that make a single call.
func runCall(cmd *cobra.Command, call func(ctx context.Context, c *sendpulse.Client) (*sendpulse.Result, error)) error {
	client, err := initClient(cmd)
	if err != nil {
		return err
	}
	res, err := call(cmd.Context(), client)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}
