package open189

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lzjever/open189/pkg/sig"
)

// SMSToken is the one-off token required to send a verification SMS.
type SMSToken struct {
	Token    string
	Envelope Envelope
}

// SMSGetToken obtains a token for SMSSendVerification. Requires an access
// token.
func (c *Client) SMSGetToken(ctx context.Context) (*SMSToken, error) {
	env, err := c.do(ctx, call{
		name:     "randcode_token",
		method:   http.MethodGet,
		endpoint: c.endpoints.SMSToken,
		params:   sig.Params{},
	})
	if err != nil {
		return nil, err
	}
	return &SMSToken{Token: env.String("token"), Envelope: env}, nil
}

// VerificationRequest describes a verification SMS.
type VerificationRequest struct {
	// Token comes from SMSGetToken.
	Token string `param:"token" validate:"required"`
	Phone string `param:"phone" validate:"required"`
	// Code is a caller-chosen code of exactly six digits. When nil the
	// platform generates the code and delivers it to CallbackURL.
	Code *string `param:"randcode" validate:"-"`
	// CallbackURL receives platform-generated codes. Ignored when Code is set.
	CallbackURL string `param:"url" validate:"-"`
	// ExpireMinutes is the code lifetime; 0 leaves the platform default of
	// five minutes.
	ExpireMinutes int `param:"exp_time" validate:"gte=0"`
}

// SendResult is the platform's answer to an SMS send.
type SendResult struct {
	Identifier string
	CreateAt   string
	Envelope   Envelope
}

func sendResultFrom(env Envelope) *SendResult {
	return &SendResult{
		Identifier: env.String("identifier"),
		CreateAt:   env.String("create_at"),
		Envelope:   env,
	}
}

// SMSSendVerification sends a verification SMS. A fixed code goes to the
// sendSms endpoint; without one the platform-generated send endpoint is used
// and a callback URL is mandatory. Requires an access token.
func (c *Client) SMSSendVerification(ctx context.Context, req VerificationRequest) (*SendResult, error) {
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}

	params := sig.Params{}
	params.Set("token", req.Token)
	params.Set("phone", req.Phone)
	if req.ExpireMinutes > 0 {
		params.Set("exp_time", strconv.Itoa(req.ExpireMinutes))
	}

	cl := call{method: http.MethodPost, params: params}
	if req.Code == nil {
		if req.CallbackURL == "" {
			return nil, newArgumentError("url", "callback URL is required for platform-generated verification code")
		}
		if err := c.validateVar("url", req.CallbackURL, "url"); err != nil {
			return nil, err
		}
		cl.name = "randcode_send"
		cl.endpoint = c.endpoints.RandcodeSend
		params.Set("url", req.CallbackURL)
	} else {
		if err := c.validateVar("randcode", *req.Code, "randcode"); err != nil {
			return nil, err
		}
		cl.name = "randcode_send_sms"
		cl.endpoint = c.endpoints.RandcodeSendSMS
		params.Set("randcode", *req.Code)
	}

	env, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	return sendResultFrom(env), nil
}

// TemplateRequest describes a template SMS.
type TemplateRequest struct {
	Phone      string `param:"acceptor_tel" validate:"required"`
	TemplateID string `param:"template_id" validate:"required"`
	// Params fill the template placeholders; sent as compact JSON.
	Params map[string]any `param:"template_param" validate:"-"`
}

// SMSSendTemplate sends a template SMS. Requires an access token.
func (c *Client) SMSSendTemplate(ctx context.Context, req TemplateRequest) (*SendResult, error) {
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}
	templateParams := req.Params
	if templateParams == nil {
		templateParams = map[string]any{}
	}
	payload, err := compactJSON.Marshal(templateParams)
	if err != nil {
		return nil, newArgumentError("template_param", fmt.Sprintf("cannot encode as JSON: %v", err))
	}

	params := sig.Params{}
	params.Set("acceptor_tel", req.Phone)
	params.Set("template_id", req.TemplateID)
	params.Set("template_param", string(payload))

	env, err := c.do(ctx, call{
		name:     "template_sms",
		method:   http.MethodPost,
		endpoint: c.endpoints.TemplateSMS,
		params:   params,
	})
	if err != nil {
		return nil, err
	}
	return sendResultFrom(env), nil
}
