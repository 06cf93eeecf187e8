package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chatfront/internal/configs"
	"chatfront/internal/pkg/auth/jwt"
)

func tokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Issue an admin token",
		Long: `Issue an admin token signed with JWT_SECRET.

The token is accepted by POST /api/auth/login; its subject becomes the
signed-in username.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			token, err := jwt.GenerateToken(args[0], cfg.JWTSecret, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", jwt.AdminTokenExpiration, "Token lifetime")

	return cmd
}
