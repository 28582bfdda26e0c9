package models

import (
	"gorm.io/gorm"
)

// Booking dates are stored exactly as the client sent them; nothing here
// checks that the interval is well formed or free of overlaps.
type Booking struct {
	gorm.Model
	PlaceID        uint    `json:"placeId" gorm:"index"`
	UserID         uint    `json:"user" gorm:"index"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Price          float32 `json:"price"`
	Place          Place   `json:"place" gorm:"foreignKey:PlaceID;references:ID"`
}
