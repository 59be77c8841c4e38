package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/tokenstore"
)

// roleClaimURI is where ASP.NET identity puts the role when no short claim is set.
const roleClaimURI = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

type tokenInfo struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

func (t tokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// inspectToken reads the claims of an access token without verifying its
// signature. The server is the only party that can verify it.
func inspectToken(raw string) (tokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return tokenInfo{}, fmt.Errorf("failed to parse token: %w", err)
	}

	var info tokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	info.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	} else {
		info.Role, _ = claims[roleClaimURI].(string)
	}
	return info, nil
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Long:  "Resolves the token the client would send right now, prints its claims and asks the server for the matching profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			owner, token, err := tokenstore.Resolve(ctx, a.store, tokenstore.DefaultPriority)
			if errors.Is(err, tokenstore.ErrNoToken) {
				fmt.Println("Not logged in. Run \"commish login\".")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Session: %s\n", owner)

			info, err := inspectToken(token.AccessToken)
			if err != nil {
				fmt.Printf("  token: opaque (%v)\n", err)
			} else {
				fmt.Printf("  subject: %s\n", info.Subject)
				if info.Email != "" {
					fmt.Printf("  email:   %s\n", info.Email)
				}
				if info.Role != "" {
					fmt.Printf("  role:    %s\n", info.Role)
				}
				if !info.ExpiresAt.IsZero() {
					state := "valid"
					if info.Expired(time.Now()) {
						state = "expired"
					}
					fmt.Printf("  expires: %s (%s)\n", info.ExpiresAt.Local().Format(time.DateTime), state)
				}
			}

			if owner != tokenstore.Consultant {
				return nil
			}

			profile, err := a.client.Profile.Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}
			fmt.Printf("\n%s <%s>\n", profile.Name, profile.Email)
			if profile.Phone != "" {
				fmt.Printf("  phone: %s\n", profile.Phone)
			}
			return nil
		},
	}
}
