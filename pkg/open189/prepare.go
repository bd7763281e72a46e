package open189

import (
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/lzjever/open189/pkg/sig"
)

// TimestampLayout is the platform's timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// The platform reads timestamps as China Standard Time, which has no DST.
var chinaStandardTime = time.FixedZone("CST", 8*60*60)

// FormatTimestamp renders t in UTC+8 using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.In(chinaStandardTime).Format(TimestampLayout)
}

// Prepare returns a copy of p extended with app_id, access_token,
// timestamp and the sign computed over all of them. p is not modified.
// Caller entries under those reserved names are replaced.
//
// When no access token is set, access_token is present in the result as an
// absent value: it is not signed and not sent.
func (c *Client) Prepare(p sig.Params) sig.Params {
	out := p.Without(sig.KeySign)
	out[sig.KeyAppID] = sig.Bytes(c.creds.AppID)
	out[sig.KeyAccessToken] = sig.Optional(c.accessToken)
	out[sig.KeyTimestamp] = sig.String(FormatTimestamp(c.now()))
	out[sig.KeySign] = sig.String(sig.Sign(out, c.creds.Secret))
	return out
}

const stateSize = 30

// newState returns base64 of 30 random bytes for tracking an OAuth request.
func newState(r io.Reader) (string, error) {
	b := make([]byte, stateSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("open189: generate state: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
