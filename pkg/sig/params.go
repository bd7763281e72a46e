// Package sig implements the open.189.cn request signature: a parameter set
// is serialized into a canonical byte string and digested with HMAC-SHA1
// keyed by the application secret.
package sig

// Reserved parameter names injected when a request is prepared for signing.
const (
	KeyAppID       = "app_id"
	KeyAccessToken = "access_token"
	KeyTimestamp   = "timestamp"
	KeySign        = "sign"
)

// Value is a parameter value. The zero Value is absent: it can sit in a
// Params set but is never signed or sent.
type Value struct {
	text    string
	present bool
}

// String returns a present Value holding s.
func String(s string) Value {
	return Value{text: s, present: true}
}

// Bytes returns a present Value holding a copy of b.
func Bytes(b []byte) Value {
	return Value{text: string(b), present: true}
}

// Absent returns the absent Value.
func Absent() Value {
	return Value{}
}

// Optional returns String(*s), or Absent when s is nil.
func Optional(s *string) Value {
	if s == nil {
		return Absent()
	}
	return String(*s)
}

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool {
	return !v.present
}

// String returns the text of v; absent values yield "".
func (v Value) String() string {
	return v.text
}

// Params is a flat request parameter set.
type Params map[string]Value

// FromMap builds a Params set from plain text pairs.
func FromMap(m map[string]string) Params {
	p := make(Params, len(m))
	for k, v := range m {
		p[k] = String(v)
	}
	return p
}

// Set stores a present value under key.
func (p Params) Set(key, value string) {
	p[key] = String(value)
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p)+4)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Without returns a copy of p with the given keys removed.
func (p Params) Without(keys ...string) Params {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Present returns the present pairs of p as a plain map.
func (p Params) Present() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		if v.present {
			out[k] = v.text
		}
	}
	return out
}
