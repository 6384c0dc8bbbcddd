package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"blog-publishing-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		secret string
		userId string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token for the author routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set JWT_SECRET")
			}

			id, err := uuid.Parse(userId)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			token, err := serverutils.SignToken(secret, id, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			a.logger.Info("blogctl", "Minted token", map[string]interface{}{
				"user_id": id.String(),
				"ttl":     ttl.String(),
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (defaults to JWT_SECRET)")
	cmd.Flags().StringVar(&userId, "user", "", "Author id to embed as user_id")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
