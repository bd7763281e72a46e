package callback

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/callback/middleware"
	"github.com/lzjever/open189/internal/core"
	"github.com/lzjever/open189/internal/observability"
)

// maxCallbackBody caps callback payloads.
const maxCallbackBody = 64 << 10

// RandcodeDelivery is the payload the platform posts to the callback URL.
type RandcodeDelivery struct {
	Identifier string
	RandCode   string
	ResCode    string
	ResMessage string
}

type RandcodeResponse struct {
	Identifier string `json:"identifier"`
	RandCode   string `json:"rand_code"`
	ReceivedAt string `json:"received_at"`
}

// decodeDelivery reads a delivery from a JSON body, or from form and query
// parameters otherwise. JSON fields may be strings or numbers.
func decodeDelivery(w http.ResponseWriter, r *http.Request) (RandcodeDelivery, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCallbackBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var fields map[string]interface{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			return RandcodeDelivery{}, err
		}
		return RandcodeDelivery{
			Identifier: text(fields["identifier"]),
			RandCode:   text(fields["rand_code"]),
			ResCode:    text(fields["res_code"]),
			ResMessage: text(fields["res_message"]),
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return RandcodeDelivery{}, err
	}
	return RandcodeDelivery{
		Identifier: r.Form.Get("identifier"),
		RandCode:   r.Form.Get("rand_code"),
		ResCode:    r.Form.Get("res_code"),
		ResMessage: r.Form.Get("res_message"),
	}, nil
}

func text(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ReceiveRandcode stores a code delivered by the platform.
func (a *API) ReceiveRandcode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := a.log.With(zap.String("request_id", middleware.GetRequestID(r)))

	d, err := decodeDelivery(w, r)
	if err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}
	d.Identifier = strings.TrimSpace(d.Identifier)
	d.RandCode = strings.TrimSpace(d.RandCode)
	if d.Identifier == "" || d.RandCode == "" {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "identifier and rand_code required"))
		return
	}

	rc := core.Randcode{
		Identifier: d.Identifier,
		Code:       d.RandCode,
		ReceivedAt: a.now().UTC(),
	}
	if err := a.store.Put(ctx, rc); err != nil {
		log.Error("store randcode failed", zap.String("identifier", rc.Identifier), zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrInternal, "failed to store randcode"))
		return
	}

	observability.RandcodesReceivedTotal.Inc()
	log.Info("randcode received",
		zap.String("identifier", rc.Identifier),
		zap.String("res_code", d.ResCode),
	)
	WriteAck(w)
}

// GetRandcode returns the code delivered for an identifier.
func (a *API) GetRandcode(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	rc, err := a.store.Get(r.Context(), identifier)
	if errors.Is(err, core.ErrRandcodeNotFound) {
		WriteError(w, core.NewAppError(core.ErrNotFound, "randcode not found"))
		return
	}
	if err != nil {
		a.log.Error("load randcode failed", zap.String("identifier", identifier), zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrInternal, "failed to load randcode"))
		return
	}
	if rc.Expired(a.now(), a.ttl) {
		WriteError(w, core.NewAppError(core.ErrGone, "randcode expired"))
		return
	}

	WriteJSON(w, http.StatusOK, RandcodeResponse{
		Identifier: rc.Identifier,
		RandCode:   rc.Code,
		ReceivedAt: rc.ReceivedAt.Format(time.RFC3339),
	})
}
