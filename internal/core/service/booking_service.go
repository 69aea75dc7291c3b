package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

type BookingService struct {
	repo   ports.BookingRepository
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, logger: logger}
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateBooking books a property. Without an explicit UserID the caller becomes the owner.
func (s *BookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if !domain.ValidStay(in.CheckInDate, in.CheckOutDate) {
		return nil, fmt.Errorf("%w: checkOutDate must be after checkInDate", domain.ErrValidation)
	}
	if in.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: propertyId is required", domain.ErrValidation)
	}

	userID := in.UserID
	if userID == 0 {
		userID = in.Caller.UserID
	}

	b := &domain.Booking{
		CheckInDate:  in.CheckInDate.UTC(),
		CheckOutDate: in.CheckOutDate.UTC(),
		UserID:       userID,
		PropertyID:   in.PropertyID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().Int64("booking_id", b.ID).Int64("user_id", b.UserID).Int64("property_id", b.PropertyID).Msg("booking created")
	return b, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, in ports.UpdateBookingInput) (*domain.Booking, error) {
	if !domain.ValidStay(in.CheckInDate, in.CheckOutDate) {
		return nil, fmt.Errorf("%w: checkOutDate must be after checkInDate", domain.ErrValidation)
	}
	return s.repo.UpdateDates(ctx, in.ID, in.CheckInDate.UTC(), in.CheckOutDate.UTC())
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("booking_id", id).Msg("booking deleted")
	return nil
}
