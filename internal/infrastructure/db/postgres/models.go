package postgres

import (
	"time"

	"github.com/staynest/booking-api/internal/core/domain"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"size:16;not null;default:guest"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type propertyRow struct {
	ID            int64   `gorm:"primaryKey"`
	Name          string  `gorm:"size:200;not null;uniqueIndex"`
	PricePerNight float64 `gorm:"not null"`
	Description   string
	Location      string   `gorm:"size:200"`
	HostID        int64    `gorm:"not null;index"`
	Host          *userRow `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

func (propertyRow) TableName() string { return "properties" }

type bookingRow struct {
	ID           int64        `gorm:"primaryKey"`
	CheckInDate  time.Time    `gorm:"not null"`
	CheckOutDate time.Time    `gorm:"not null"`
	UserID       int64        `gorm:"not null;index"`
	User         *userRow     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PropertyID   int64        `gorm:"not null;index"`
	Property     *propertyRow `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (bookingRow) TableName() string { return "bookings" }

func userFromRow(r userRow) domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

func bookingFromRow(r bookingRow) domain.Booking {
	return domain.Booking{
		ID:           r.ID,
		CheckInDate:  r.CheckInDate.UTC(),
		CheckOutDate: r.CheckOutDate.UTC(),
		UserID:       r.UserID,
		PropertyID:   r.PropertyID,
	}
}

func propertyFromRow(r propertyRow) domain.Property {
	return domain.Property{
		ID:            r.ID,
		Name:          r.Name,
		PricePerNight: r.PricePerNight,
		Description:   r.Description,
		Location:      r.Location,
		HostID:        r.HostID,
	}
}
