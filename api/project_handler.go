package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wderue/portfolio-backend/catalog"
	"github.com/wderue/portfolio-backend/errs"
	"github.com/wderue/portfolio-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *catalog.Service
}

func newProjectHandler(catalogService *catalog.Service) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalogService,
	}
}

// ProjectCollection represents the filtered project listing
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// getProjects resolves the filter query parameters into an ordered project list
// @Summary List projects
// @Description Lists projects matching the filter, newest update first
// @Tags Projects
// @Produce json
// @Param search query string false "Free-text search over title and description"
// @Param language query string false "Comma-separated language values"
// @Param database query string false "Comma-separated database values"
// @Param backend query string false "Comma-separated backend values"
// @Param frontend query string false "Comma-separated frontend values"
// @Param devops query string false "Comma-separated devops values"
// @Success 200 {object} ProjectCollection "Matching projects with tags"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalog.ParseFilter(r.URL.Query())

		projects, err := h.catalog.List(r.Context(), ctxGetCallerID(r.Context()), filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID with its tags
// @Summary Get project
// @Description Retrieves one project by ID with its tags
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details with tags"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectIDStr := chi.URLParam(r, "projectID")
		if projectIDStr == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.catalog.GetByID(r.Context(), ctxGetCallerID(r.Context()), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getFilterOptions returns the distinct tag values in use, per category
// @Summary Filter options
// @Description Returns the tag values currently in use for each category
// @Tags Projects
// @Produce json
// @Success 200 {object} catalog.TagOptions "Tag values per category"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Router /filter-options [get]
func (h projectHandler) getFilterOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := h.catalog.TagOptions(r.Context(), ctxGetCallerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, options)
	}
}
