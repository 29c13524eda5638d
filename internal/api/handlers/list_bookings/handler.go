package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

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

const msgInvalidMine = "mine must be true or false"

// Handle GET /api/bookings?field_type=&date=&status=&mine=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := handlers.AuthFromRequest(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	query := r.URL.Query()
	req := &models.ListBookingsRequest{
		FieldType: query.Get("field_type"),
		Date:      query.Get("date"),
		Status:    query.Get("status"),
	}

	if mine := query.Get("mine"); mine != "" {
		v, err := strconv.ParseBool(mine)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid mine flag: %q", mine)
			handlers.RespondBadRequest(w, msgInvalidMine)
			return
		}
		req.Mine = v
	}

	result, err := h.service.List(r.Context(), auth, req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
