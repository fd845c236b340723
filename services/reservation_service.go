package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-ops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationInput is a booking request for a future stay.
type ReservationInput struct {
	RoomNumber    string
	GuestName     string
	ArrivalDate   time.Time
	DepartureDate time.Time
}

type ReservationServiceInterface interface {
	Create(in ReservationInput) (models.Reservation, error)
	ListActive() ([]models.Reservation, error)
	History() ([]models.Reservation, error)
	Cancel(referenceCode string) (models.Reservation, error)
}

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) ReservationServiceInterface {
	return &ReservationService{DB: db}
}

// Create books a room for a date range. The room row is locked for the
// whole transaction so concurrent bookings on the same room serialize; the
// overlap checks run against both active reservations and active stays.
func (s *ReservationService) Create(in ReservationInput) (models.Reservation, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.GuestName = strings.TrimSpace(in.GuestName)
	if in.RoomNumber == "" || in.GuestName == "" {
		return models.Reservation{}, fmt.Errorf("%w: room number and guest name are required", ErrValidation)
	}
	if !in.DepartureDate.After(in.ArrivalDate) {
		return models.Reservation{}, fmt.Errorf("%w: departure date must be after arrival date", ErrValidation)
	}

	var reservation models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_number = ?", in.RoomNumber).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %s", ErrNotFound, in.RoomNumber)
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if room.Status == models.RoomMaintenance {
			return fmt.Errorf("%w: room %s is under maintenance", ErrConflict, in.RoomNumber)
		}

		var overlapping models.Reservation
		err := tx.
			Where("room_number = ? AND status = ? AND arrival_date < ? AND departure_date > ?",
				in.RoomNumber, models.ReservationReserved, in.DepartureDate, in.ArrivalDate).
			First(&overlapping).Error
		if err == nil {
			return fmt.Errorf("%w: room %s is already reserved from %s to %s",
				ErrConflict, in.RoomNumber,
				overlapping.ArrivalDate.Format("2006-01-02"),
				overlapping.DepartureDate.Format("2006-01-02"))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check overlapping reservations: %w", err)
		}

		var occupied models.CheckIn
		err = tx.
			Where("room_number = ? AND departed_at IS NULL AND arrival_date < ? AND departure_date > ?",
				in.RoomNumber, in.DepartureDate, in.ArrivalDate).
			First(&occupied).Error
		if err == nil {
			return fmt.Errorf("%w: room %s is occupied during the requested dates", ErrConflict, in.RoomNumber)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check active stays: %w", err)
		}

		reservation = models.Reservation{
			ReferenceCode: uuid.NewString(),
			RoomNumber:    in.RoomNumber,
			GuestName:     in.GuestName,
			ArrivalDate:   in.ArrivalDate,
			DepartureDate: in.DepartureDate,
			Status:        models.ReservationReserved,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		// A checked-in room keeps its status; the future reservation lives
		// alongside the current stay.
		if room.Status == models.RoomAvailable {
			if !ValidTransition(room.Status, models.RoomReserved) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, room.Status, models.RoomReserved)
			}
			if err := tx.Model(&room).Update("status", models.RoomReserved).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return models.Reservation{}, txErr
	}
	return reservation, nil
}

func (s *ReservationService) ListActive() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.
		Where("status = ?", models.ReservationReserved).
		Order("arrival_date ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load active reservations: %w", err)
	}
	return reservations, nil
}

// History returns closed reservations only, newest departure first.
func (s *ReservationService) History() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.
		Where("status IN ?", []string{models.ReservationFulfilled, models.ReservationCancelled}).
		Order("departure_date DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservation history: %w", err)
	}
	return reservations, nil
}

// Cancel closes an active reservation and frees the room when no other
// active reservation still claims it.
func (s *ReservationService) Cancel(referenceCode string) (models.Reservation, error) {
	var reservation models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("reference_code = ? AND status = ?", referenceCode, models.ReservationReserved).
			First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no active reservation %s", ErrNotFound, referenceCode)
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_number = ?", reservation.RoomNumber).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %s", ErrNotFound, reservation.RoomNumber)
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if err := tx.Model(&reservation).Update("status", models.ReservationCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		reservation.Status = models.ReservationCancelled

		if room.Status == models.RoomReserved {
			var remaining int64
			if err := tx.Model(&models.Reservation{}).
				Where("room_number = ? AND status = ?", room.RoomNumber, models.ReservationReserved).
				Count(&remaining).Error; err != nil {
				return fmt.Errorf("failed to count remaining reservations: %w", err)
			}
			if remaining == 0 {
				if err := tx.Model(&room).Update("status", models.RoomAvailable).Error; err != nil {
					return fmt.Errorf("failed to release room %s: %w", room.RoomNumber, err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return models.Reservation{}, txErr
	}
	return reservation, nil
}
