package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotTaken          = "slot taken"
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

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := handlers.AuthFromRequest(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), auth, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user=%s, field=%s, date=%s, slot=%s",
				auth.UserID, req.FieldType, req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, bookings.ErrInvalidField),
			errors.Is(err, bookings.ErrInvalidDate),
			errors.Is(err, bookings.ErrInvalidSlot),
			errors.Is(err, bookings.ErrWeekend),
			errors.Is(err, bookings.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Validation failed: user=%s, error=%v", auth.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user=%s, error=%v", auth.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user=%s", result.ID, auth.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
