package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/auth"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeService struct {
	req *models.ListBookingsRequest
	err error
}

func (s *fakeService) List(_ context.Context, _ domain.AuthContext, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []*models.BookingResponse{}}, nil
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(auth.WithContext(r.Context(), domain.AuthContext{UserID: "u1", Role: domain.RoleUser, Token: "t"}))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/api/bookings?field_type=futsal&date=2026-10-19&status=approved&mine=true")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &models.ListBookingsRequest{
		FieldType: "futsal",
		Date:      "2026-10-19",
		Status:    "approved",
		Mine:      true,
	}, svc.req)
}

func TestHandle_MineDefaultsToFalse(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/api/bookings")

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.req.Mine)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "bad mine flag", target: "/api/bookings?mine=yes-please", wantCode: http.StatusBadRequest},
		{name: "bad filter", target: "/api/bookings?status=cancelled", err: bookings.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "internal", target: "/api/bookings", err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
