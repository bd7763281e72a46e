package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lzjever/open189/pkg/open189"
)

type TokenRow struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	OpenID       string `json:"open_id,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

func tokenRow(t *open189.AccessToken) TokenRow {
	return TokenRow{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    t.ExpiresIn,
		OpenID:       t.OpenID,
		Scope:        t.Scope,
	}
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "OAuth access token commands",
}

var tokenCCCmd = &cobra.Command{
	Use:   "cc",
	Short: "Obtain an access token with the client_credentials grant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, func(ctx context.Context, c *open189.Client) (interface{}, error) {
			t, err := c.GetAccessTokenCC(ctx)
			if err != nil {
				return nil, err
			}
			return tokenRow(t), nil
		})
	},
}

var (
	authCode    string
	redirectURI string
)

var tokenACCmd = &cobra.Command{
	Use:   "ac",
	Short: "Exchange an authorization code for an access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, func(ctx context.Context, c *open189.Client) (interface{}, error) {
			t, err := c.GetAccessTokenAC(ctx, authCode, redirectURI)
			if err != nil {
				return nil, err
			}
			return tokenRow(t), nil
		})
	},
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh <refresh-token>",
	Short: "Refresh an access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, func(ctx context.Context, c *open189.Client) (interface{}, error) {
			t, err := c.RefreshAccessToken(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return tokenRow(t), nil
		})
	},
}

func init() {
	tokenACCmd.Flags().StringVar(&authCode, "code", "", "Authorization code")
	tokenACCmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "Redirect URI registered for the application")
	tokenACCmd.MarkFlagRequired("code")

	tokenCmd.AddCommand(tokenCCCmd, tokenACCmd, tokenRefreshCmd)
	rootCmd.AddCommand(tokenCmd)
}
