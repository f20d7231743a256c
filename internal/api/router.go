package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "tubescribe/internal/api/middleware"
	"tubescribe/internal/api/response"
)

// Dependencies holds all handler dependencies for the router.
type Dependencies struct {
	HealthHandler     http.HandlerFunc
	TranscribeHandler http.HandlerFunc
	StatusHandler     http.HandlerFunc
	SummarizeHandler  http.HandlerFunc
}

// NewRouter builds the chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/health", orNotImplemented(deps.HealthHandler))
	r.Post("/transcribe", orNotImplemented(deps.TranscribeHandler))
	r.Get("/status/{jobID}", orNotImplemented(deps.StatusHandler))
	r.Post("/summarize/{mode}", orNotImplemented(deps.SummarizeHandler))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
