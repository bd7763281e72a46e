package callback

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/open189/internal/core"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	WriteJSON(w, err.Code.HTTPStatus(), ErrorResponse{
		Code:    string(err.Code),
		Message: err.Message,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteAck acknowledges a platform delivery in the platform's envelope.
func WriteAck(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"res_code":    0,
		"res_message": "Success",
	})
}
