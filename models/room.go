package models

import (
	"time"

	"gorm.io/gorm"
)

// Room status values. Status is the single authoritative state per room;
// reservations and check-ins are the append-only history around it.
const (
	RoomAvailable   = "available"
	RoomReserved    = "reserved"
	RoomCheckedIn   = "checked-in"
	RoomMaintenance = "maintenance"
)

type Room struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	RoomNumber string  `gorm:"column:room_number;uniqueIndex;size:50" json:"room_number" binding:"required"`
	RoomType   string  `gorm:"column:room_type;size:50" json:"room_type"`
	Amount     float64 `gorm:"column:amount" json:"amount"`
	Status     string  `gorm:"size:50;default:available;index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
