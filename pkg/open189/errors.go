package open189

import (
	"errors"
	"fmt"
)

// ResCodeUnknown is the res_code reported when the envelope carries none or
// it cannot be read as an integer.
const ResCodeUnknown = -1

// ProtocolError is returned whenever the platform answers with an HTTP
// status other than 200 or a res_code other than 0.
type ProtocolError struct {
	StatusCode int
	ResCode    int
	Message    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("open189: HTTP %d res_code %d: %s", e.StatusCode, e.ResCode, e.Message)
}

// ErrInvalidArgument matches every ArgumentError through errors.Is.
var ErrInvalidArgument = errors.New("open189: invalid argument")

// ArgumentError reports a locally rejected argument. No request has been
// sent when it is returned.
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("open189: invalid argument %s: %s", e.Field, e.Message)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func newArgumentError(field, msg string) *ArgumentError {
	return &ArgumentError{Field: field, Message: msg}
}

// IsProtocolError reports whether err is or wraps a ProtocolError and
// returns it.
func IsProtocolError(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
