// File: internal/cli/token.go
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/auth"
)

// NewTokenCmd creates the 'token' command.
func NewTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <owner>",
		Short: "Mint a vault owner token",
		Long: `Print a bearer token that scopes API vault access to one owner.
Requires JWT_SECRET_KEY; without it the API runs with a single anonymous vault.`,
		Args:    cobra.ExactArgs(1),
		Example: `  vendornexus token alice --ttl 168h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if a.cfg.JWTSecretKey == "" {
					return errors.New("JWT_SECRET_KEY is not set")
				}
				token, err := auth.GenerateJWT(args[0], []byte(a.cfg.JWTSecretKey), ttl)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "Token lifetime")
	return cmd
}
