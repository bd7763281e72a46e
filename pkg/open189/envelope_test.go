package open189

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_ResCode(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"res_code":0}`, 0},
		{`{"res_code":"0"}`, 0},
		{`{"res_code":"1"}`, 1},
		{`{"res_code":" 42 "}`, 42},
		{`{"res_code":-3}`, -3},
		{`{"res_code":1.0}`, 1},
		{`{"res_code":true}`, 1},
		{`{"res_code":null}`, ResCodeUnknown},
		{`{"res_code":"1.0"}`, ResCodeUnknown},
		{`{"res_code":"x"}`, ResCodeUnknown},
		{`{"res_code":{}}`, ResCodeUnknown},
		{`{}`, ResCodeUnknown},
		{``, ResCodeUnknown},
		{`null`, ResCodeUnknown},
		{`not json`, ResCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEnvelope([]byte(tt.body)).ResCode())
		})
	}
}

func TestEnvelope_Accessors(t *testing.T) {
	env := parseEnvelope([]byte(`{"res_code":0,"res_message":"ok","token":"t","expires_in":7200,"big":12345678901234,"nothing":null}`))

	assert.Equal(t, "ok", env.Message())
	assert.Equal(t, "t", env.String("token"))
	assert.Equal(t, "7200", env.String("expires_in"))
	assert.Equal(t, "12345678901234", env.String("big"))
	assert.Equal(t, "", env.String("nothing"))
	assert.Equal(t, "", env.String("missing"))

	n, ok := env.Int("expires_in")
	require.True(t, ok)
	assert.Equal(t, int64(7200), n)
	_, ok = env.Int("token")
	assert.False(t, ok)
}

func TestEnvelope_Decode(t *testing.T) {
	env := parseEnvelope([]byte(`{"res_code":0,"identifier":"id-1","create_at":"2024-01-15"}`))

	var out struct {
		Identifier string `json:"identifier"`
		CreateAt   string `json:"create_at"`
	}
	require.NoError(t, env.Decode(&out))
	assert.Equal(t, "id-1", out.Identifier)
	assert.Equal(t, "2024-01-15", out.CreateAt)
}
