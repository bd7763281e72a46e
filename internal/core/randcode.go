package core

import "time"

// Randcode is a platform-generated verification code delivered to the
// callback receiver, keyed by the identifier returned from the send call.
type Randcode struct {
	Identifier string    `json:"identifier"`
	Code       string    `json:"rand_code"`
	ReceivedAt time.Time `json:"received_at"`
}

// Expired reports whether r is older than ttl at now. A non-positive ttl
// never expires.
func (r Randcode) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(r.ReceivedAt) > ttl
}
