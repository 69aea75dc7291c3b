package ports

import (
	"context"
	"time"

	"github.com/staynest/booking-api/internal/core/domain"
)

// BookingRepository defines booking persistence.
// Lookups and mutations of a missing row return domain.ErrBookingNotFound.
type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
	UpdateDates(ctx context.Context, id int64, checkIn, checkOut time.Time) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// CreateBookingInput is the DTO passed from the transport layer to BookingService.
type CreateBookingInput struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	UserID       int64 // zero means "the caller"
	PropertyID   int64
	Caller       domain.Identity
}

// UpdateBookingInput replaces the stay dates of a booking.
type UpdateBookingInput struct {
	ID           int64
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// BookingService defines use-case operations for bookings.
type BookingService interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, in UpdateBookingInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// PropertyRepository defines property persistence. Used by the seeder.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByName(ctx context.Context, name string) (*domain.Property, error)
}
