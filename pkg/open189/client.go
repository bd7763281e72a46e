// Package open189 is a client for the open.189.cn platform API: OAuth
// access-token acquisition and SMS sending.
//
// Every call except token acquisition is signed: the request parameters are
// extended with app_id, access_token and timestamp, and the HMAC-SHA1 of
// their canonical form (see package sig) is sent as "sign".
package open189

import (
	"crypto/rand"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/observability"
)

// Endpoints are the platform URLs the client talks to.
type Endpoints struct {
	AccessToken     string
	SMSToken        string
	RandcodeSend    string
	RandcodeSendSMS string
	TemplateSMS     string
}

const (
	DefaultOAuthURL   = "https://oauth.api.189.cn/emp/oauth2/v3/access_token"
	DefaultAPIBaseURL = "http://api.189.cn"
)

// DefaultEndpoints are the production platform URLs.
var DefaultEndpoints = EndpointsFor(DefaultOAuthURL, DefaultAPIBaseURL)

// EndpointsFor builds the endpoint set from the OAuth token URL and the API
// base URL.
func EndpointsFor(oauthURL, apiBaseURL string) Endpoints {
	base := strings.TrimSuffix(apiBaseURL, "/")
	return Endpoints{
		AccessToken:     oauthURL,
		SMSToken:        base + "/v2/dm/randcode/token",
		RandcodeSend:    base + "/v2/dm/randcode/send",
		RandcodeSendSMS: base + "/v2/dm/randcode/sendSms",
		TemplateSMS:     base + "/v2/emp/templateSms/sendSms",
	}
}

// Credentials identify the application. Both fields are opaque bytes; the
// secret keys the request HMAC.
type Credentials struct {
	AppID  []byte
	Secret []byte
}

// Client calls the open.189.cn API.
//
// The credentials are fixed at construction. The access token may be
// replaced with SetAccessToken, but the client does no locking: callers that
// share a Client across goroutines must not change the token while calls are
// in flight.
type Client struct {
	creds       Credentials
	accessToken *string

	endpoints  Endpoints
	httpClient *http.Client
	timeout    *time.Duration
	log        *zap.Logger
	now        func() time.Time
	random     io.Reader
	validate   *validator.Validate
}

// Option configures the client.
type Option func(*Client)

// WithAccessToken sets the initial access token.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.SetAccessToken(token) }
}

// DefaultTimeout bounds each call made through the default HTTP client.
const DefaultTimeout = 30 * time.Second

// WithHTTPClient replaces the HTTP client. The client keeps its own copy, so
// hc is never modified. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP timeout, overriding that of a client given to
// WithHTTPClient regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithEndpoints overrides the platform URLs.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithLogger sets the logger. Secrets, tokens and signatures are never
// logged.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClock sets the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithRandom sets the entropy source for OAuth state strings.
func WithRandom(r io.Reader) Option {
	return func(c *Client) { c.random = r }
}

// New creates a Client for the given application. appID and secret are
// copied.
func New(appID string, secret []byte, opts ...Option) *Client {
	c := &Client{
		creds: Credentials{
			AppID:  []byte(appID),
			Secret: append([]byte(nil), secret...),
		},
		endpoints: DefaultEndpoints,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log:      zap.NewNop(),
		now:      time.Now,
		random:   rand.Reader,
		validate: newValidator(),
	}
	for _, o := range opts {
		o(c)
	}
	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc
	return c
}

// AppID returns the application id.
func (c *Client) AppID() string {
	return string(c.creds.AppID)
}

// AccessToken returns the current access token and whether one is set.
func (c *Client) AccessToken() (string, bool) {
	if c.accessToken == nil {
		return "", false
	}
	return *c.accessToken, true
}

// SetAccessToken replaces the access token used for signed calls.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = &token
}

// ClearAccessToken removes the access token; signed calls then carry no
// access_token parameter.
func (c *Client) ClearAccessToken() {
	c.accessToken = nil
}

// RegisterMetrics registers the client's Prometheus collectors.
func RegisterMetrics(reg prometheus.Registerer) {
	observability.RegisterAll(reg)
}
