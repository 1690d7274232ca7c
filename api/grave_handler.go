package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibe-graveyard/backend/database"
	"github.com/vibe-graveyard/backend/errs"
	"github.com/vibe-graveyard/backend/models"
)

// maxEpitaphLength is soft guidance enforced only at the input boundary;
// stored rows are never re-checked against it.
const maxEpitaphLength = 200

type graveHandler struct {
	responder Responder
	logger    zerolog.Logger
	graveRepo *database.GraveRepo
}

func newGraveHandler(graveRepo *database.GraveRepo) graveHandler {
	logger := log.With().Str("handlerName", "graveHandler").Logger()

	return graveHandler{
		responder: NewResponder(logger),
		logger:    logger,
		graveRepo: graveRepo,
	}
}

// listGraves returns one page of approved graves, newest first.
func (h graveHandler) listGraves() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", database.DefaultPageSize)
		offset := queryInt(r, "offset", 0)

		page, err := h.graveRepo.ListApproved(limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "graves", err))
			return
		}

		h.responder.WriteJSON(w, GraveListResponse{
			Graves:  newGraveViews(page.Graves),
			Total:   page.Total,
			HasMore: page.HasMore,
		})
	}
}

// getGrave returns a single grave by id. It does not filter by status, so a
// known id reaches pending and rejected rows too; ids are random uuids.
func (h graveHandler) getGrave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graveID := chi.URLParam(r, "graveID")
		if graveID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing graveID"))
			return
		}

		grave, err := h.graveRepo.FindByID(graveID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "grave", err))
			return
		}

		if grave == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("grave"))
			return
		}

		h.responder.WriteJSON(w, newGraveView(*grave))
	}
}

type submitGraveRequest struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	BirthDate    string   `json:"birthDate"`
	DeathDate    string   `json:"deathDate"`
	CauseOfDeath string   `json:"causeOfDeath"`
	Epitaph      string   `json:"epitaph"`
	TechStack    []string `json:"techStack"`
	StarCount    *int64   `json:"starCount"`
	SubmittedBy  *string  `json:"submittedBy"`
}

// submitGrave accepts a public obituary submission. The new row always lands
// in pending regardless of what the caller sent.
func (h graveHandler) submitGrave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitGraveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode grave submission")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if len(req.Epitaph) > maxEpitaphLength {
			h.responder.WriteError(w, errs.NewInvalidFieldError("epitaph", "must be at most 200 characters"))
			return
		}

		grave := models.Grave{
			Name:         req.Name,
			URL:          req.URL,
			BirthDate:    req.BirthDate,
			DeathDate:    req.DeathDate,
			CauseOfDeath: req.CauseOfDeath,
			Epitaph:      req.Epitaph,
			TechStack:    models.EncodeTechStack(req.TechStack),
			StarCount:    req.StarCount,
			SubmittedBy:  req.SubmittedBy,
		}

		if err := h.graveRepo.Submit(&grave); err != nil {
			if errs.IsValidation(err) {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "grave", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"status": "success",
			"id":     grave.ID,
		})
	}
}

// payRespect bumps a grave's respect counter and returns the authoritative
// new value. The UI's optimistic bump reconciles against this.
func (h graveHandler) payRespect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graveID := chi.URLParam(r, "graveID")
		if graveID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing graveID"))
			return
		}

		count, err := h.graveRepo.PayRespect(graveID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment respect for", "grave", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"respectCount": count})
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
