package api

import "github.com/vibe-graveyard/backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	graveHandler    graveHandler
	adminHandler    adminHandler
	respectsHandler respectsHandler
	starsHandler    starsHandler
}

// GraveView is a grave as rendered to clients: the stored JSON tech stack is
// decoded to a list, falling back to empty on corrupt data.
type GraveView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	BirthDate    string        `json:"birthDate"`
	DeathDate    string        `json:"deathDate"`
	CauseOfDeath string        `json:"causeOfDeath"`
	Epitaph      string        `json:"epitaph"`
	TechStack    []string      `json:"techStack"`
	StarCount    *int64        `json:"starCount"`
	RespectCount int64         `json:"respectCount"`
	SubmittedBy  *string       `json:"submittedBy,omitempty"`
	Status       models.Status `json:"status"`
	CreatedAt    string        `json:"createdAt"`
}

// GraveListResponse is one page of the public graveyard listing.
type GraveListResponse struct {
	Graves  []GraveView `json:"graves"`
	Total   int64       `json:"total"`
	HasMore bool        `json:"hasMore"`
}

func newGraveView(grave models.Grave) GraveView {
	return GraveView{
		ID:           grave.ID,
		Name:         grave.Name,
		URL:          grave.URL,
		BirthDate:    grave.BirthDate,
		DeathDate:    grave.DeathDate,
		CauseOfDeath: grave.CauseOfDeath,
		Epitaph:      grave.Epitaph,
		TechStack:    models.DecodeTechStack(grave.TechStack),
		StarCount:    grave.StarCount,
		RespectCount: grave.RespectCount,
		SubmittedBy:  grave.SubmittedBy,
		Status:       grave.Status,
		CreatedAt:    grave.CreatedAt,
	}
}

func newGraveViews(graves []models.Grave) []GraveView {
	views := make([]GraveView, 0, len(graves))
	for _, grave := range graves {
		views = append(views, newGraveView(grave))
	}
	return views
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}
