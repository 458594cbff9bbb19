package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr0staman/pigbot/internal/config"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/services"
)

// ownerAndDay parses "<owner_id> [YYYY-MM-DD]". The date defaults to the
// current game day.
func ownerAndDay(args []string, now time.Time) (uint64, time.Time, error) {
	owner, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || owner == 0 {
		return 0, time.Time{}, fmt.Errorf("owner_id must be a positive integer: %q", args[0])
	}
	if len(args) < 2 {
		return owner, game.Today(now), nil
	}
	day, err := time.Parse(time.DateOnly, args[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %q", args[1])
	}
	return owner, day, nil
}

func newSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size <owner_id> [date]",
		Short: "Print the daily size of an owner's hand pig",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, day, err := ownerAndDay(args, time.Now())
			if err != nil {
				return err
			}
			size := game.CalculateSize(owner, day)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d kg (%s)\n", game.PigEmoji(size), size, day.Format(time.DateOnly))
			return err
		},
	}
}

func newOverclockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overclock <owner_id> [date]",
		Short: "Print the overclock report of an owner as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, day, err := ownerAndDay(args, time.Now())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode((&services.GameService{}).Overclock(owner, day))
		},
	}
}

func newTokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <client>",
		Short: "Sign a service token for a bot frontend",
		Long:  "Signs an HS256 token with API_SIGNING_SECRET. The client name scopes idempotency keys and rate limits.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := middleware.SignServiceToken(middleware.AuthOptions{
				Secret: []byte(cfg.Auth.SigningSecret),
				Issuer: cfg.Auth.Issuer,
			}, args[0], ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, 0 for no expiry")
	return cmd
}
