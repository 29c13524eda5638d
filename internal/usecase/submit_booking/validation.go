package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest проверяет запрос до любых сетевых вызовов
func validateRequest(req *Request, now time.Time) error {
	if req == nil || !req.Auth.IsValid(now) {
		return ErrNotAuthenticated
	}

	if len(req.Slots) == 0 {
		return ErrEmptySelection
	}

	if req.Date.IsZero() {
		return ErrMissingDate
	}

	if domain.IsWeekend(req.Date) {
		return ErrWeekend
	}

	if !req.FieldType.IsValid() {
		return ErrInvalidField
	}

	for _, slot := range req.Slots {
		if !domain.IsCatalogSlot(slot) {
			return ErrInvalidSlot
		}
	}

	return nil
}
