package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

type stubBookingService struct {
	created ports.CreateBookingInput
	updated ports.UpdateBookingInput
	deleted int64
	err     error
}

func (s *stubBookingService) ListBookings(context.Context) ([]domain.Booking, error) {
	return []domain.Booking{{ID: 1}}, s.err
}

func (s *stubBookingService) GetBooking(_ context.Context, id int64) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: id}, nil
}

func (s *stubBookingService) CreateBooking(_ context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: 10, CheckInDate: in.CheckInDate, CheckOutDate: in.CheckOutDate, UserID: in.Caller.UserID, PropertyID: in.PropertyID}, nil
}

func (s *stubBookingService) UpdateBooking(_ context.Context, in ports.UpdateBookingInput) (*domain.Booking, error) {
	s.updated = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: in.ID, CheckInDate: in.CheckInDate, CheckOutDate: in.CheckOutDate}, nil
}

func (s *stubBookingService) DeleteBooking(_ context.Context, id int64) error {
	s.deleted = id
	return s.err
}

func TestBookingHandler_Create(t *testing.T) {
	svc := &stubBookingService{}
	c, rec := newJSONContext(http.MethodPost, "/bookings",
		`{"checkInDate":"2026-07-01T00:00:00Z","checkOutDate":"2026-07-04T00:00:00Z","propertyId":2}`)
	c.Set("identity", domain.Identity{UserID: 7, Role: domain.RoleGuest})

	require.NoError(t, NewBookingHandler(svc).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.created.Caller.UserID)
	assert.Equal(t, int64(2), svc.created.PropertyID)
	assert.Zero(t, svc.created.UserID)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026-07-01T00:00:00Z", got["checkInDate"])
	assert.EqualValues(t, 7, got["userId"])
}

func TestBookingHandler_Create_Validation(t *testing.T) {
	bodies := map[string]string{
		"checkout before checkin": `{"checkInDate":"2026-07-04T00:00:00Z","checkOutDate":"2026-07-01T00:00:00Z","propertyId":2}`,
		"missing property":        `{"checkInDate":"2026-07-01T00:00:00Z","checkOutDate":"2026-07-04T00:00:00Z"}`,
		"bad date":                `{"checkInDate":"tomorrow","checkOutDate":"2026-07-04T00:00:00Z","propertyId":2}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := &stubBookingService{}
			c, _ := newJSONContext(http.MethodPost, "/bookings", body)
			c.Set("identity", domain.Identity{UserID: 7, Role: domain.RoleGuest})

			err := NewBookingHandler(svc).Create(c)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, svc.created.PropertyID)
		})
	}
}

func TestBookingHandler_Create_RequiresIdentity(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/bookings", `{}`)
	assert.ErrorIs(t, NewBookingHandler(&stubBookingService{}).Create(c), domain.ErrMissingToken)
}

func TestBookingHandler_Get(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/bookings/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, NewBookingHandler(&stubBookingService{}).Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestBookingHandler_Get_BadID(t *testing.T) {
	c, _ := newJSONContext(http.MethodGet, "/bookings/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	assert.ErrorIs(t, NewBookingHandler(&stubBookingService{}).Get(c), domain.ErrValidation)
}

func TestBookingHandler_Update(t *testing.T) {
	svc := &stubBookingService{}
	c, rec := newJSONContext(http.MethodPut, "/bookings/3",
		`{"checkInDate":"2026-08-01T00:00:00Z","checkOutDate":"2026-08-02T00:00:00Z"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, NewBookingHandler(svc).Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.updated.ID)
	assert.True(t, svc.updated.CheckOutDate.Equal(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBookingHandler_Delete(t *testing.T) {
	svc := &stubBookingService{}
	c, rec := newJSONContext(http.MethodDelete, "/bookings/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, NewBookingHandler(svc).Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), svc.deleted)
}

func TestBookingHandler_PropagatesServiceErrors(t *testing.T) {
	svc := &stubBookingService{err: domain.ErrBookingNotFound}
	c, _ := newJSONContext(http.MethodDelete, "/bookings/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")

	err := NewBookingHandler(svc).Delete(c)
	assert.True(t, errors.Is(err, domain.ErrBookingNotFound))
}
