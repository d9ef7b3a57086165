package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/recruitment-ranker/internal/config"
	"alfredoptarigan/recruitment-ranker/internal/middleware"
	"alfredoptarigan/recruitment-ranker/internal/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the API",
	Long:  "Signs a token with JWT_SECRET carrying the given user id and role. Intended for local testing.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var (
	tokenRole string
	tokenUser string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", string(models.RoleHR), "Role: ADMIN, HR, EMPLOYEE or CANDIDATE")
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "local-user", "User id placed in the token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	role := models.Role(strings.ToUpper(tokenRole))
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	cfg := config.Load()
	token, err := middleware.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHours).GenerateToken(tokenUser, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
