package open189

import (
	"context"
	"net/http"

	"github.com/lzjever/open189/pkg/sig"
)

// Parameter names of the OAuth token endpoint.
const (
	keyAppSecret    = "app_secret"
	keyState        = "state"
	keyGrantType    = "grant_type"
	keyCode         = "code"
	keyRedirectURI  = "redirect_uri"
	keyRefreshToken = "refresh_token"
)

// Grant types of the OAuth token endpoint.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
)

// AccessToken is the result of a token request.
type AccessToken struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the token lifetime in seconds, 0 when not reported.
	ExpiresIn int64
	OpenID    string
	Scope     string
	Envelope  Envelope
}

func accessTokenFrom(env Envelope) *AccessToken {
	expires, _ := env.Int("expires_in")
	return &AccessToken{
		AccessToken:  env.String("access_token"),
		RefreshToken: env.String("refresh_token"),
		ExpiresIn:    expires,
		OpenID:       env.String("open_id"),
		Scope:        env.String("scope"),
		Envelope:     env,
	}
}

// requestAccessToken posts an unsigned token request. The current access
// token plays no part in it and is left untouched.
func (c *Client) requestAccessToken(ctx context.Context, grantType string, extra map[string]string) (*AccessToken, error) {
	state, err := newState(c.random)
	if err != nil {
		return nil, err
	}

	params := sig.FromMap(extra)
	params[sig.KeyAppID] = sig.Bytes(c.creds.AppID)
	params[keyAppSecret] = sig.Bytes(c.creds.Secret)
	params.Set(keyState, state)
	params.Set(keyGrantType, grantType)

	env, err := c.do(ctx, call{
		name:     "access_token",
		method:   http.MethodPost,
		endpoint: c.endpoints.AccessToken,
		params:   params,
		raw:      true,
	})
	if err != nil {
		return nil, err
	}
	return accessTokenFrom(env), nil
}

// GetAccessTokenAC exchanges an authorization code (Authorization Code flow).
func (c *Client) GetAccessTokenAC(ctx context.Context, code, redirectURI string) (*AccessToken, error) {
	if code == "" {
		return nil, newArgumentError(keyCode, "authorization code is required")
	}
	return c.requestAccessToken(ctx, GrantAuthorizationCode, map[string]string{
		keyCode:        code,
		keyRedirectURI: redirectURI,
	})
}

// GetAccessTokenCC obtains a user-independent token (Client Credentials flow).
func (c *Client) GetAccessTokenCC(ctx context.Context) (*AccessToken, error) {
	return c.requestAccessToken(ctx, GrantClientCredentials, nil)
}

// RefreshAccessToken obtains a new token from a refresh token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessToken, error) {
	if refreshToken == "" {
		return nil, newArgumentError(keyRefreshToken, "refresh token is required")
	}
	return c.requestAccessToken(ctx, GrantRefreshToken, map[string]string{
		keyRefreshToken: refreshToken,
	})
}
