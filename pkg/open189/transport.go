package open189

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/core"
	"github.com/lzjever/open189/internal/observability"
	"github.com/lzjever/open189/pkg/sig"
)

// maxResponseBody caps how much of a response is read.
const maxResponseBody = 1 << 20

// call describes one platform request.
type call struct {
	name     string // metrics and log label
	method   string
	endpoint string
	params   sig.Params
	// raw sends params as given; otherwise they go through Prepare.
	raw bool
}

// encodeForm converts p to url.Values, dropping absent values.
func encodeForm(p sig.Params) url.Values {
	form := make(url.Values, len(p))
	for k, v := range p.Present() {
		form.Set(k, v)
	}
	return form
}

func (c *Client) newRequest(ctx context.Context, cl call, form url.Values) (*http.Request, error) {
	switch cl.method {
	case http.MethodGet:
		u, err := url.Parse(cl.endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint %s: %w", cl.endpoint, err)
		}
		q := u.Query()
		for k, vs := range form {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	case http.MethodPost:
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	default:
		return nil, fmt.Errorf("unsupported method %s", cl.method)
	}
}

// do sends cl and interprets the response envelope. It never retries: SMS
// sends are not idempotent.
func (c *Client) do(ctx context.Context, cl call) (Envelope, error) {
	params := cl.params
	if !cl.raw {
		params = c.Prepare(params)
	}

	requestID := core.NewRequestID()
	log := observability.CallLogger(c.log, requestID, cl.name, cl.method)

	req, err := c.newRequest(ctx, cl, encodeForm(params))
	if err != nil {
		return nil, fmt.Errorf("open189: %s: build request: %w", cl.name, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.APIRequestsTotal.WithLabelValues(cl.name, observability.OutcomeTransportError).Inc()
		log.Warn("api call failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("open189: %s: %w", cl.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		observability.APIRequestsTotal.WithLabelValues(cl.name, observability.OutcomeTransportError).Inc()
		return nil, fmt.Errorf("open189: %s: read response: %w", cl.name, err)
	}
	duration := time.Since(start)
	observability.APIRequestDuration.WithLabelValues(cl.name).Observe(duration.Seconds())

	env := parseEnvelope(body)
	resCode := env.ResCode()
	log = log.With(
		zap.Int("status", resp.StatusCode),
		zap.Int("res_code", resCode),
		zap.Duration("duration", duration),
	)

	if resp.StatusCode != http.StatusOK || resCode != 0 {
		observability.APIRequestsTotal.WithLabelValues(cl.name, observability.OutcomeProtocolError).Inc()
		log.Info("api call rejected", zap.String("res_message", env.Message()))
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			ResCode:    resCode,
			Message:    env.Message(),
		}
	}

	observability.APIRequestsTotal.WithLabelValues(cl.name, observability.OutcomeOK).Inc()
	log.Debug("api call succeeded")
	return env, nil
}
