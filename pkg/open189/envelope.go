package open189

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// envelopeJSON decodes numbers as json.Number so res_code and friends keep
// their textual form until coerced.
var envelopeJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// compactJSON matches the platform's expectation for template_param:
// no whitespace, no HTML escaping, non-ASCII left as is.
var compactJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// Envelope is the decoded JSON object of a platform response. Besides the
// payload it carries res_code and, usually, res_message.
type Envelope map[string]any

// parseEnvelope decodes body. Anything that is not a JSON object yields an
// empty envelope, whose res_code is ResCodeUnknown.
func parseEnvelope(body []byte) Envelope {
	var env Envelope
	if err := envelopeJSON.Unmarshal(body, &env); err != nil || env == nil {
		return Envelope{}
	}
	return env
}

// ResCode returns res_code as an integer. The platform sends it either as a
// number or as a string; a missing or unreadable value yields
// ResCodeUnknown.
func (e Envelope) ResCode() int {
	n, ok := e.Int("res_code")
	if !ok {
		return ResCodeUnknown
	}
	return int(n)
}

// Message returns res_message, or "" when absent.
func (e Envelope) Message() string {
	return e.String("res_message")
}

// String returns the value under key as text. Numbers are rendered in their
// JSON form; missing and null values yield "".
func (e Envelope) String(key string) string {
	v := e[key]
	if num, ok := jsoniter.CastJsonNumber(v); ok {
		return num
	}
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value under key as an integer, accepting JSON numbers,
// numeric strings and booleans. Fractional numbers are truncated.
func (e Envelope) Int(key string) (int64, bool) {
	v := e[key]
	if num, ok := jsoniter.CastJsonNumber(v); ok {
		return numberToInt(num)
	}
	switch v := v.(type) {
	case float64:
		return floatToInt(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Decode unmarshals the envelope into v.
func (e Envelope) Decode(v any) error {
	b, err := envelopeJSON.Marshal(e)
	if err != nil {
		return fmt.Errorf("open189: encode envelope: %w", err)
	}
	if err := envelopeJSON.Unmarshal(b, v); err != nil {
		return fmt.Errorf("open189: decode envelope: %w", err)
	}
	return nil
}

func numberToInt(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
