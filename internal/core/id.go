package core

import "github.com/google/uuid"

// NewRequestID returns a time-ordered UUID v7 used to correlate log lines
// of one API call or callback delivery.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
