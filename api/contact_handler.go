package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wderue/portfolio-backend/errs"
	"github.com/wderue/portfolio-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactHandler(contactService *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contactService,
	}
}

// submitContact validates and delivers a contact form submission
// @Summary Submit contact form
// @Description Validates the triple and attempts a single email delivery
// @Tags Contact
// @Accept json
// @Produce json
// @Param contact body services.ContactRequest true "Contact form data"
// @Success 200 {object} map[string]string "Delivery confirmation"
// @Failure 400 {object} ErrorResponse "Validation error with field details"
// @Failure 502 {object} ErrorResponse "Send failure"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		fieldErrs, err := h.contact.Submit(r.Context(), req)
		if fieldErrs != nil {
			h.responder.WriteValidationErrors(w, fieldErrs)
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "message sent",
		})
	}
}
