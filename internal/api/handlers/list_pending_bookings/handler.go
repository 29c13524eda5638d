package list_pending_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
)

const msgForbidden = "administrator role required"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := handlers.AuthFromRequest(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListPending(r.Context(), auth)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("GET /bookings/pending - Access denied: user=%s", auth.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /bookings/pending - Failed to list pending bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/pending - admin=%s, count=%d", auth.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
