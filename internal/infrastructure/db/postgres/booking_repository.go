package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/staynest/booking-api/internal/core/domain"
)

// BookingRepository implements ports.BookingRepository with GORM.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, bookingFromRow(row))
	}
	return out, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var row bookingRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	b := bookingFromRow(row)
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	row := bookingRow{
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		UserID:       b.UserID,
		PropertyID:   b.PropertyID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	b.ID = row.ID
	return nil
}

func (r *BookingRepository) UpdateDates(ctx context.Context, id int64, checkIn, checkOut time.Time) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingRow{}).
		Where("id = ?", id).
		Updates(map[string]any{"check_in_date": checkIn, "check_out_date": checkOut})
	if res.Error != nil {
		return nil, fmt.Errorf("update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrBookingNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&bookingRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
