package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibe-graveyard/backend/database"
	"github.com/vibe-graveyard/backend/errs"
	"github.com/vibe-graveyard/backend/models"
)

// adminHandler serves the moderation surface. Authorization happens in the
// adminOnly middleware before any of these run.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	graveRepo *database.GraveRepo
}

func newAdminHandler(graveRepo *database.GraveRepo) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		graveRepo: graveRepo,
	}
}

// listAllGraves returns every grave regardless of status, newest first.
func (h adminHandler) listAllGraves() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graves, err := h.graveRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "graves", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"graves": newGraveViews(graves)})
	}
}

// listPendingGraves returns the moderation queue.
func (h adminHandler) listPendingGraves() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graves, err := h.graveRepo.FindPending()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list pending", "graves", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"graves": newGraveViews(graves)})
	}
}

type moderateGraveRequest struct {
	Status models.Status `json:"status"`
}

// moderateGrave approves or rejects a grave. Re-applying the current status,
// or moderating an id that no longer exists, succeeds with no effect.
func (h adminHandler) moderateGrave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graveID := chi.URLParam(r, "graveID")
		if graveID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing graveID"))
			return
		}

		var req moderateGraveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode moderation request")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.graveRepo.Moderate(graveID, req.Status); err != nil {
			if errs.IsValidation(err) {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("moderate", "grave", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// updateGrave overwrites only the fields present in the request body. A
// starCount key holding null clears the stored count back to "unknown".
func (h adminHandler) updateGrave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graveID := chi.URLParam(r, "graveID")
		if graveID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing graveID"))
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode grave update")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.graveRepo.UpdateFields(graveID, fields); err != nil {
			if errs.IsValidation(err) {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "grave", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// deleteGrave hard-deletes a grave. Deleting an already-gone id succeeds.
func (h adminHandler) deleteGrave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graveID := chi.URLParam(r, "graveID")
		if graveID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing graveID"))
			return
		}

		if err := h.graveRepo.Delete(graveID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "grave", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "grave deleted successfully",
		})
	}
}
