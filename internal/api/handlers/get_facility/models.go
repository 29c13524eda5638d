package get_facility

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// FacilityResponse описание площадки: поля, каталог слотов и расписание
type FacilityResponse struct {
	Timezone   string          `json:"timezone"`
	Fields     []FieldResponse `json:"fields"`
	TimeSlots  []string        `json:"time_slots"`
	ClosedDays []string        `json:"closed_days"`
}

type FieldResponse struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewFacilityResponse собирает ответ из каталога домена
func NewFacilityResponse(loc *time.Location) *FacilityResponse {
	fields := make([]FieldResponse, len(domain.FieldTypes))
	for i, f := range domain.FieldTypes {
		fields[i] = FieldResponse{Type: f.String(), Name: f.DisplayName()}
	}

	catalog := domain.Catalog()
	slots := make([]string, len(catalog))
	for i, s := range catalog {
		slots[i] = s.String()
	}

	return &FacilityResponse{
		Timezone:   loc.String(),
		Fields:     fields,
		TimeSlots:  slots,
		ClosedDays: []string{time.Saturday.String(), time.Sunday.String()},
	}
}
