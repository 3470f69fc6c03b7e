package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token and show where it is cached",
		Long: `Loads the cached access token, fetching a new one when none is cached.
With --refresh a new token is always requested and the cache overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			var err error
			if refresh {
				_, err = cc.Client.FetchToken(cmd.Context())
			} else {
				_, err = cc.Client.Init(cmd.Context())
			}
			if err != nil {
				return err
			}

			// The token itself is never printed
			fmt.Fprintf(cmd.OutOrStdout(), "Token ready (cache key %s)\n", cc.Client.CacheKey())
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Always request a new token")
	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
