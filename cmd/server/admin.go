package main

import (
	"fmt"

	"github.com/anonto42/folio/backend/internal/auth"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/anonto42/folio/backend/pkg/config"
	"github.com/spf13/cobra"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard administrators",
	}
	cmd.AddCommand(
		setAdminCmd("grant", "Give an existing user admin rights", true),
		setAdminCmd("revoke", "Remove admin rights from a user", false),
	)
	return cmd
}

func setAdminCmd(use, short string, admin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := config.InitDB(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}
			defer db.CloseDB()

			tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
			users := services.NewUserService(db.Store.Users, tokens, nil)
			user, err := users.SetAdmin(ctx, args[0], admin)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) admin=%t\n", user.Email, user.ID, user.IsAdmin)
			return nil
		},
	}
}
