package open189

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSMSSendVerification_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       VerificationRequest
		wantField string
	}{
		{
			name:      "five digits",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("12345")},
			wantField: "randcode",
		},
		{
			name:      "letters",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("abcdef")},
			wantField: "randcode",
		},
		{
			name:      "seven digits",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("1234567")},
			wantField: "randcode",
		},
		{
			name:      "signed number",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("-12345")},
			wantField: "randcode",
		},
		{
			name:      "empty code",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("")},
			wantField: "randcode",
		},
		{
			name:      "no code no callback",
			req:       VerificationRequest{Token: "t", Phone: "13800000000"},
			wantField: "url",
		},
		{
			name:      "relative callback",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", CallbackURL: "callback"},
			wantField: "url",
		},
		{
			name:      "missing token",
			req:       VerificationRequest{Phone: "13800000000", Code: strPtr("123456")},
			wantField: "token",
		},
		{
			name:      "missing phone",
			req:       VerificationRequest{Token: "t", Code: strPtr("123456")},
			wantField: "phone",
		},
		{
			name:      "negative expiry",
			req:       VerificationRequest{Token: "t", Phone: "13800000000", Code: strPtr("123456"), ExpireMinutes: -1},
			wantField: "exp_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: 200, body: `{"res_code":0}`}
			c := newTestClient(t, rec, WithAccessToken("tok"))

			_, err := c.SMSSendVerification(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidArgument)
			var ae *ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantField, ae.Field)
			assert.Equal(t, 0, rec.calls, "no request may be sent")
		})
	}
}

func TestSMSSendVerification_FixedCode(t *testing.T) {
	rec := &recorder{status: 200, body: `{"res_code":0,"identifier":"id-1","create_at":"1705300200"}`}
	c := newTestClient(t, rec, WithAccessToken("tok"))

	res, err := c.SMSSendVerification(context.Background(), VerificationRequest{
		Token:         "sms-token",
		Phone:         "13800000000",
		Code:          strPtr("123456"),
		CallbackURL:   "https://ignored.example/cb",
		ExpireMinutes: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", res.Identifier)
	assert.Equal(t, "1705300200", res.CreateAt)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/v2/dm/randcode/sendSms", rec.path)
	assert.Equal(t, "123456", rec.form.Get("randcode"))
	assert.Equal(t, "sms-token", rec.form.Get("token"))
	assert.Equal(t, "13800000000", rec.form.Get("phone"))
	assert.Equal(t, "10", rec.form.Get("exp_time"))
	assert.Empty(t, rec.form.Get("url"))
	assert.NotEmpty(t, rec.form.Get("sign"))
	assert.Equal(t, "application/x-www-form-urlencoded", rec.header.Get("Content-Type"))
}

func TestSMSSendVerification_PlatformCode(t *testing.T) {
	rec := &recorder{status: 200, body: `{"res_code":0,"identifier":"id-2"}`}
	c := newTestClient(t, rec, WithAccessToken("tok"))

	res, err := c.SMSSendVerification(context.Background(), VerificationRequest{
		Token:       "sms-token",
		Phone:       "13800000000",
		CallbackURL: "https://app.example/v1/randcode/callback",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-2", res.Identifier)

	assert.Equal(t, "/v2/dm/randcode/send", rec.path)
	assert.Equal(t, "https://app.example/v1/randcode/callback", rec.form.Get("url"))
	_, hasCode := rec.form["randcode"]
	assert.False(t, hasCode)
	_, hasExp := rec.form["exp_time"]
	assert.False(t, hasExp, "exp_time is omitted when not set")
}

func TestSMSSendTemplate(t *testing.T) {
	rec := &recorder{status: 200, body: `{"res_code":0,"identifier":"id-3"}`}
	c := newTestClient(t, rec, WithAccessToken("tok"))

	res, err := c.SMSSendTemplate(context.Background(), TemplateRequest{
		Phone:      "13800000000",
		TemplateID: "91000001",
		Params:     map[string]any{"name": "张三", "code": 42, "link": "<a&b>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "id-3", res.Identifier)

	assert.Equal(t, "/v2/emp/templateSms/sendSms", rec.path)
	assert.Equal(t, "13800000000", rec.form.Get("acceptor_tel"))
	assert.Equal(t, "91000001", rec.form.Get("template_id"))
	assert.Equal(t, `{"code":42,"link":"<a&b>","name":"张三"}`, rec.form.Get("template_param"))
}

func TestSMSSendTemplate_NilParams(t *testing.T) {
	rec := &recorder{status: 200, body: `{"res_code":0}`}
	c := newTestClient(t, rec, WithAccessToken("tok"))

	_, err := c.SMSSendTemplate(context.Background(), TemplateRequest{Phone: "13800000000", TemplateID: "1"})
	require.NoError(t, err)
	assert.Equal(t, `{}`, rec.form.Get("template_param"))
}

func TestSMSSendTemplate_Validation(t *testing.T) {
	rec := &recorder{status: 200, body: `{"res_code":0}`}
	c := newTestClient(t, rec, WithAccessToken("tok"))

	_, err := c.SMSSendTemplate(context.Background(), TemplateRequest{TemplateID: "1"})
	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "acceptor_tel", ae.Field)

	_, err = c.SMSSendTemplate(context.Background(), TemplateRequest{Phone: "13800000000"})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "template_id", ae.Field)

	_, err = c.SMSSendTemplate(context.Background(), TemplateRequest{
		Phone:      "13800000000",
		TemplateID: "1",
		Params:     map[string]any{"bad": make(chan int)},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, rec.calls)
}
