package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-ops-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentInput is one payment against the active stay of a room.
type PaymentInput struct {
	AmountPaid      float64
	DiscountAllowed float64
	Method          string
}

type PaymentServiceInterface interface {
	Create(roomNumber string, in PaymentInput) (models.Payment, error)
	ListForRoom(roomNumber string) ([]models.Payment, error)
	Void(roomNumber string, paymentID uint) (models.Payment, error)
	ListVoidForRoom(roomNumber string) ([]models.Payment, error)
}

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) PaymentServiceInterface {
	return &PaymentService{DB: db}
}

// stayNights is the billable length of a stay, never less than one night.
func stayNights(arrival, departure time.Time) int {
	n := int(departure.Sub(arrival).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// Create records a payment against the room's active stay. The total due
// is nights times the room rate; cumulative payments plus discounts may
// never exceed it.
func (s *PaymentService) Create(roomNumber string, in PaymentInput) (models.Payment, error) {
	if in.AmountPaid <= 0 {
		return models.Payment{}, fmt.Errorf("%w: amount paid must be positive", ErrValidation)
	}
	if in.DiscountAllowed < 0 {
		return models.Payment{}, fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	}
	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = "cash"
	}

	var payment models.Payment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_number = ?", roomNumber).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		var stay models.CheckIn
		if err := tx.
			Where("room_number = ? AND departed_at IS NULL", roomNumber).
			First(&stay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no active check-in for room %s", ErrNotFound, roomNumber)
			}
			return fmt.Errorf("failed to load active stay: %w", err)
		}

		totalDue := float64(stayNights(stay.ArrivalDate, stay.DepartureDate)) * room.Amount

		var prior []models.Payment
		if err := tx.
			Where("check_in_id = ? AND status <> ?", stay.ID, models.PaymentVoided).
			Find(&prior).Error; err != nil {
			return fmt.Errorf("failed to load prior payments: %w", err)
		}
		paidSoFar := 0.0
		for _, p := range prior {
			paidSoFar += p.AmountPaid + p.DiscountAllowed
		}

		newTotal := paidSoFar + in.AmountPaid + in.DiscountAllowed
		if newTotal > totalDue {
			return fmt.Errorf("%w: payment exceeds the total due of %.2f", ErrConflict, totalDue)
		}

		balance := totalDue - newTotal
		status := models.PaymentCompleted
		if balance > 0 {
			status = models.PaymentIncomplete
		}

		payment = models.Payment{
			CheckInID:       stay.ID,
			RoomNumber:      roomNumber,
			AmountPaid:      in.AmountPaid,
			DiscountAllowed: in.DiscountAllowed,
			Method:          method,
			Status:          status,
			BalanceDue:      balance,
			PaidAt:          time.Now().UTC(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return models.Payment{}, txErr
	}
	return payment, nil
}

// Void cancels a recorded payment. The row keeps its amounts for audit but
// stops counting toward the stay's total; the outstanding balance after the
// void is recomputed from the remaining payments and stored on the row.
func (s *PaymentService) Void(roomNumber string, paymentID uint) (models.Payment, error) {
	var payment models.Payment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND room_number = ?", paymentID, roomNumber).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment %d for room %s", ErrNotFound, paymentID, roomNumber)
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}
		if payment.Status == models.PaymentVoided {
			return fmt.Errorf("%w: payment %d is already voided", ErrConflict, paymentID)
		}

		var stay models.CheckIn
		if err := tx.First(&stay, payment.CheckInID).Error; err != nil {
			return fmt.Errorf("failed to load stay: %w", err)
		}
		var room models.Room
		if err := tx.Where("room_number = ?", payment.RoomNumber).First(&room).Error; err != nil {
			return fmt.Errorf("failed to load room: %w", err)
		}

		totalDue := float64(stayNights(stay.ArrivalDate, stay.DepartureDate)) * room.Amount

		var remaining []models.Payment
		if err := tx.
			Where("check_in_id = ? AND status <> ? AND id <> ?",
				payment.CheckInID, models.PaymentVoided, payment.ID).
			Find(&remaining).Error; err != nil {
			return fmt.Errorf("failed to load remaining payments: %w", err)
		}
		paid := 0.0
		for _, p := range remaining {
			paid += p.AmountPaid + p.DiscountAllowed
		}

		balance := totalDue - paid
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":      models.PaymentVoided,
			"balance_due": balance,
		}).Error; err != nil {
			return fmt.Errorf("failed to void payment: %w", err)
		}
		payment.Status = models.PaymentVoided
		payment.BalanceDue = balance
		return nil
	})
	if txErr != nil {
		return models.Payment{}, txErr
	}
	return payment, nil
}

// ListVoidForRoom returns the voided payments recorded against a room.
func (s *PaymentService) ListVoidForRoom(roomNumber string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.
		Where("room_number = ? AND status = ?", roomNumber, models.PaymentVoided).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load voided payments: %w", err)
	}
	return payments, nil
}

// ListForRoom returns the payments recorded against the room's active stay.
func (s *PaymentService) ListForRoom(roomNumber string) ([]models.Payment, error) {
	var stay models.CheckIn
	if err := s.DB.
		Where("room_number = ? AND departed_at IS NULL", roomNumber).
		First(&stay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active check-in for room %s", ErrNotFound, roomNumber)
		}
		return nil, fmt.Errorf("failed to load active stay: %w", err)
	}

	var payments []models.Payment
	if err := s.DB.
		Where("check_in_id = ?", stay.ID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}
