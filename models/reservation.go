package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation status values. "reserved" is the only active state; fulfilled
// and cancelled rows stay behind as history and are never mutated again.
const (
	ReservationReserved  = "reserved"
	ReservationFulfilled = "fulfilled"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReferenceCode string    `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	RoomNumber    string    `gorm:"column:room_number;index;size:50" json:"room_number"`
	GuestName     string    `gorm:"column:guest_name;size:255" json:"guest_name"`
	ArrivalDate   time.Time `gorm:"column:arrival_date" json:"arrival_date"`
	DepartureDate time.Time `gorm:"column:departure_date" json:"departure_date"`
	Status        string    `gorm:"size:50;default:reserved;index" json:"status"`

	Room Room `gorm:"foreignKey:RoomNumber;references:RoomNumber" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
