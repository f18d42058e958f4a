package api

import (
	"github.com/wderue/portfolio-backend/catalog"
	"github.com/wderue/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(catalogService *catalog.Service, contactService *services.ContactService) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(catalogService),
		contactHandler: newContactHandler(contactService),
	}
}
