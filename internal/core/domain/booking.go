package domain

import "time"

// Booking is a reservation of a property by a user.
type Booking struct {
	ID           int64     `json:"id"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	UserID       int64     `json:"userId"`
	PropertyID   int64     `json:"propertyId"`
}

// ValidStay reports whether the check-out date falls strictly after check-in.
func ValidStay(checkIn, checkOut time.Time) bool {
	return !checkIn.IsZero() && checkOut.After(checkIn)
}

// Property is a rentable listing owned by a host.
type Property struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	HostID        int64   `json:"hostId"`
}
