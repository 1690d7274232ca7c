package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibe-graveyard/backend/errs"
	"github.com/vibe-graveyard/backend/services"
)

// starsHandler backs the submission form's "fetch stars" convenience button.
type starsHandler struct {
	responder Responder
	logger    zerolog.Logger
	fetcher   services.StarFetcher
}

func newStarsHandler(fetcher services.StarFetcher) starsHandler {
	logger := log.With().Str("handlerName", "starsHandler").Logger()

	return starsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		fetcher:   fetcher,
	}
}

// getStarCount returns {"starCount": n} for a GitHub repo URL, or a null
// starCount when the lookup fails. Failure is not an error here: the form
// simply leaves the field blank.
func (h starsHandler) getStarCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectURL := r.URL.Query().Get("url")
		if projectURL == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing url"))
			return
		}

		count := h.fetcher.FetchStarCount(r.Context(), projectURL)
		h.responder.WriteJSON(w, map[string]any{"starCount": count})
	}
}
