// Package callback receives platform-generated verification codes posted by
// open.189.cn to the callback URL of a randcode/send request, and serves
// them back by identifier.
package callback

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/callback/middleware"
	"github.com/lzjever/open189/internal/core"
)

// CodeStore persists received codes.
type CodeStore interface {
	Put(ctx context.Context, r core.Randcode) error
	// Get returns core.ErrRandcodeNotFound for unknown identifiers.
	Get(ctx context.Context, identifier string) (core.Randcode, error)
	Ping(ctx context.Context) error
}

type API struct {
	store CodeStore
	log   *zap.Logger
	ttl   time.Duration
	now   func() time.Time
}

// NewAPI builds the receiver. Codes older than ttl are reported gone; a
// non-positive ttl keeps them forever.
func NewAPI(store CodeStore, log *zap.Logger, ttl time.Duration) *API {
	return &API{
		store: store,
		log:   log,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger(a.log))
	r.Use(chiMiddleware.AllowContentType("application/json", "application/x-www-form-urlencoded"))

	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/randcode/callback", a.ReceiveRandcode)
		r.Get("/randcode/{identifier}", a.GetRandcode)
	})

	return r
}
