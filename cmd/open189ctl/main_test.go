package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzjever/open189/pkg/sig"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		output = "table"
		signSecret = ""
		signPrepare = false
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParseKV(t *testing.T) {
	got, err := parseKV([]string{"a=1", "b=x=y", "c=", "a=2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2", "b": "x=y", "c": ""}, got)

	_, err = parseKV([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseKV([]string{"=v"})
	assert.Error(t, err)
}

func TestTemplateValue(t *testing.T) {
	assert.Equal(t, int64(42), templateValue("42"))
	assert.Equal(t, "007", templateValue("007"))
	assert.Equal(t, "+1", templateValue("+1"))
	assert.Equal(t, "张三", templateValue("张三"))
}

func TestSignCommand(t *testing.T) {
	out, err := execute(t, "sign", "--env-file", "", "--secret", "012345", "-o", "json", "k3=v3", "k1=v1", "k2=v2")
	require.NoError(t, err)

	var row SignRow
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "k1=v1&k2=v2&k3=v3", row.Canonical)
	assert.Equal(t, "8802a919bf62f04298f2ae073df88c75f6f6ece3", row.Hex)
	assert.Equal(t, "iAKpGb9i8EKY8q4HPfiMdfb27OM=", row.Base64)
}

func TestSignCommand_Table(t *testing.T) {
	out, err := execute(t, "sign", "--env-file", "", "--secret", "012345", "k1=v1", "k2=v2", "k3=v3", "sign=stale")
	require.NoError(t, err)
	assert.Contains(t, out, "k1=v1&k2=v2&k3=v3")
	assert.Contains(t, out, "iAKpGb9i8EKY8q4HPfiMdfb27OM=")
}

func TestSignCommand_PrepareUsesSecretFlag(t *testing.T) {
	t.Setenv("OPEN189_APP_ID", "app-1")
	t.Setenv("OPEN189_APP_SECRET", "config-secret")
	t.Setenv("OPEN189_LOG_LEVEL", "error")

	out, err := execute(t, "sign", "--env-file", "", "--prepare", "--secret", "012345", "-o", "json", "k1=v1")
	require.NoError(t, err)

	var row SignRow
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "app-1", row.Params["app_id"])
	assert.NotEmpty(t, row.Params["timestamp"])
	assert.Equal(t, row.Base64, row.Params["sign"], "prepared sign must match the printed signature")

	prepared := sig.Params{}
	for k, v := range row.Params {
		prepared.Set(k, v)
	}
	assert.True(t, sig.Verify(prepared, []byte("012345"), row.Params["sign"]))
	assert.False(t, sig.Verify(prepared, []byte("config-secret"), row.Params["sign"]))
}

func TestSignCommand_PrepareUsesConfigSecret(t *testing.T) {
	t.Setenv("OPEN189_APP_ID", "app-1")
	t.Setenv("OPEN189_APP_SECRET", "012345")
	t.Setenv("OPEN189_LOG_LEVEL", "error")

	out, err := execute(t, "sign", "--env-file", "", "--prepare", "-o", "json", "k1=v1")
	require.NoError(t, err)

	var row SignRow
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, row.Base64, row.Params["sign"])
}

func TestCodeGetCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/randcode/id-1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"identifier":"id-1","rand_code":"123456","received_at":"2024-01-15T06:30:00Z"}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"OPEN189_NOT_FOUND","message":"randcode not found"}`))
		}
	}))
	defer srv.Close()

	out, err := execute(t, "code", "get", "id-1", "--callback-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "123456")

	_, err = execute(t, "code", "get", "missing", "--callback-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPEN189_NOT_FOUND")
}
