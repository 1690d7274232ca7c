package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibe-graveyard/backend/database"
)

// respectsHandler serves the site-wide "press F" counter.
type respectsHandler struct {
	responder Responder
	logger    zerolog.Logger
	statsRepo *database.StatsRepo
}

func newRespectsHandler(statsRepo *database.StatsRepo) respectsHandler {
	logger := log.With().Str("handlerName", "respectsHandler").Logger()

	return respectsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		statsRepo: statsRepo,
	}
}

func (h respectsHandler) getRespects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.statsRepo.Read()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("read", "global stats", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"respectCount": count})
	}
}

func (h respectsHandler) incrementRespects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.statsRepo.Increment()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment", "global stats", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"respectCount": count})
	}
}
