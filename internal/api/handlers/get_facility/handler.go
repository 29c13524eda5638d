package get_facility

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

type Handler struct {
	response *FacilityResponse
	logger   Logger
}

// NewHandler создает обработчик; ответ не меняется за время жизни процесса
func NewHandler(loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		response: NewFacilityResponse(loc),
		logger:   logger,
	}
}

// Handle GET /api/facility
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /facility - from %s", r.RemoteAddr)
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
