package api

import (
	"github.com/vibe-graveyard/backend/database"
	"github.com/vibe-graveyard/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		graveHandler:    newGraveHandler(database.GraveRepo()),
		adminHandler:    newAdminHandler(database.GraveRepo()),
		respectsHandler: newRespectsHandler(database.StatsRepo()),
		starsHandler:    newStarsHandler(services.NewStarFetcher()),
	}
}
