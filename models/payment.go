package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentIncomplete = "payment incomplete"
	PaymentCompleted  = "payment completed"
	PaymentVoided     = "voided"
)

type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CheckInID       uint      `gorm:"column:check_in_id;index" json:"check_in_id"`
	RoomNumber      string    `gorm:"column:room_number;index;size:50" json:"room_number"`
	AmountPaid      float64   `gorm:"column:amount_paid" json:"amount_paid"`
	DiscountAllowed float64   `gorm:"column:discount_allowed" json:"discount_allowed"`
	Method          string    `gorm:"size:50" json:"method"`
	Status          string    `gorm:"size:50;index" json:"status"`
	BalanceDue      float64   `gorm:"column:balance_due" json:"balance_due"`
	PaidAt          time.Time `gorm:"column:paid_at" json:"paid_at"`

	CheckIn CheckIn `gorm:"foreignKey:CheckInID;references:ID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
