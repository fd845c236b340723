package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CheckInActive = "checked-in"
	CheckInClosed = "checked-out"
)

// CheckIn is one stay. A stay is active while DepartedAt is NULL; checkout
// sets DepartedAt and flips Status, the row itself is kept as history with
// the guest identity intact for audit.
type CheckIn struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomNumber    string    `gorm:"column:room_number;index;size:50" json:"room_number"`
	GuestName     string    `gorm:"column:guest_name;size:255" json:"guest_name"`
	ArrivalDate   time.Time `gorm:"column:arrival_date" json:"arrival_date"`
	DepartureDate time.Time `gorm:"column:departure_date" json:"departure_date"`
	Status        string    `gorm:"size:50;default:checked-in;index" json:"status"`

	DepartedAt    *time.Time `gorm:"column:departed_at;index" json:"departed_at,omitempty"`
	ReservationID *uint      `gorm:"column:reservation_id;index" json:"reservation_id,omitempty"`

	// Extra guests sharing the room, as submitted at the front desk.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanying_guests,omitempty"`

	Room        Room        `gorm:"foreignKey:RoomNumber;references:RoomNumber" json:"-"`
	Reservation Reservation `gorm:"foreignKey:ReservationID;references:ID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
