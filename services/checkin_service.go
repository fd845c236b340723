package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-ops-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccompanyingGuest is an extra guest sharing the room, stored as JSON on
// the stay record.
type AccompanyingGuest struct {
	FullName string `json:"full_name"`
	Type     string `json:"type"`
}

// CheckInInput is a front-desk arrival: either a walk-in on an available
// room or the arrival of a guest holding a reservation.
type CheckInInput struct {
	RoomNumber         string
	GuestName          string
	ArrivalDate        time.Time
	DepartureDate      time.Time
	AccompanyingGuests []AccompanyingGuest
}

type CheckInServiceInterface interface {
	CheckIn(in CheckInInput) (models.CheckIn, error)
	CheckOut(roomNumber string) (models.CheckIn, error)
	ListActive() ([]models.CheckIn, error)
	History() ([]models.CheckIn, error)
}

type CheckInService struct {
	DB *gorm.DB
}

func NewCheckInService(db *gorm.DB) CheckInServiceInterface {
	return &CheckInService{DB: db}
}

// CheckIn opens a stay. The room row lock serializes concurrent arrivals
// on the same room: the second transaction re-reads a checked-in room and
// fails with a conflict instead of opening a duplicate stay.
func (s *CheckInService) CheckIn(in CheckInInput) (models.CheckIn, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.GuestName = strings.TrimSpace(in.GuestName)
	if in.RoomNumber == "" || in.GuestName == "" {
		return models.CheckIn{}, fmt.Errorf("%w: room number and guest name are required", ErrValidation)
	}
	if !in.DepartureDate.After(in.ArrivalDate) {
		return models.CheckIn{}, fmt.Errorf("%w: departure date must be after arrival date", ErrValidation)
	}

	var stay models.CheckIn
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

		switch room.Status {
		case models.RoomCheckedIn:
			return fmt.Errorf("%w: room %s is already checked-in", ErrConflict, in.RoomNumber)
		case models.RoomMaintenance:
			return fmt.Errorf("%w: room %s is under maintenance", ErrConflict, in.RoomNumber)
		}

		// The status said the room is free; an open stay here means the
		// invariant is already broken and must not be papered over.
		var openStays int64
		if err := tx.Model(&models.CheckIn{}).
			Where("room_number = ? AND departed_at IS NULL", in.RoomNumber).
			Count(&openStays).Error; err != nil {
			return fmt.Errorf("failed to count open stays: %w", err)
		}
		if openStays > 0 {
			return fmt.Errorf("%w: room %s is marked %s but has %d open stay(s)",
				ErrDataIntegrity, in.RoomNumber, room.Status, openStays)
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		var reservationID *uint

		if room.Status == models.RoomReserved {
			// Arrival against a reservation: it must belong to this guest
			// and cover today.
			var reservation models.Reservation
			err := tx.
				Where("room_number = ? AND status = ? AND LOWER(guest_name) = ? AND arrival_date <= ? AND departure_date > ?",
					in.RoomNumber, models.ReservationReserved, strings.ToLower(in.GuestName), today, today).
				First(&reservation).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: room %s is reserved for another guest or different dates",
						ErrConflict, in.RoomNumber)
				}
				return fmt.Errorf("failed to load reservation: %w", err)
			}
			if err := tx.Model(&reservation).Update("status", models.ReservationFulfilled).Error; err != nil {
				return fmt.Errorf("failed to fulfil reservation: %w", err)
			}
			reservationID = &reservation.ID
		} else {
			// Walk-in. The guest's own reservation on this room, if it
			// overlaps the stay, is fulfilled by the arrival; only a
			// reservation held by someone else blocks the walk-in.
			var own models.Reservation
			err := tx.
				Where("room_number = ? AND status = ? AND LOWER(guest_name) = ? AND arrival_date < ? AND departure_date > ?",
					in.RoomNumber, models.ReservationReserved, strings.ToLower(in.GuestName), in.DepartureDate, in.ArrivalDate).
				First(&own).Error
			switch {
			case err == nil:
				if err := tx.Model(&own).Update("status", models.ReservationFulfilled).Error; err != nil {
					return fmt.Errorf("failed to fulfil reservation: %w", err)
				}
				reservationID = &own.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("failed to load reservation: %w", err)
			}

			var overlapping models.Reservation
			err = tx.
				Where("room_number = ? AND status = ? AND LOWER(guest_name) <> ? AND arrival_date < ? AND departure_date > ?",
					in.RoomNumber, models.ReservationReserved, strings.ToLower(in.GuestName), in.DepartureDate, in.ArrivalDate).
				First(&overlapping).Error
			if err == nil {
				return fmt.Errorf("%w: room %s is reserved from %s to %s",
					ErrConflict, in.RoomNumber,
					overlapping.ArrivalDate.Format("2006-01-02"),
					overlapping.DepartureDate.Format("2006-01-02"))
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check reservations: %w", err)
			}
		}

		stay = models.CheckIn{
			RoomNumber:    in.RoomNumber,
			GuestName:     in.GuestName,
			ArrivalDate:   in.ArrivalDate,
			DepartureDate: in.DepartureDate,
			Status:        models.CheckInActive,
			ReservationID: reservationID,
		}
		if len(in.AccompanyingGuests) > 0 {
			raw, err := json.Marshal(in.AccompanyingGuests)
			if err != nil {
				return fmt.Errorf("failed to encode accompanying guests: %w", err)
			}
			stay.AccompanyingGuests = datatypes.JSON(raw)
		}
		if err := tx.Create(&stay).Error; err != nil {
			return fmt.Errorf("failed to create stay: %w", err)
		}

		if !ValidTransition(room.Status, models.RoomCheckedIn) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, room.Status, models.RoomCheckedIn)
		}
		if err := tx.Model(&room).Update("status", models.RoomCheckedIn).Error; err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return models.CheckIn{}, txErr
	}
	return stay, nil
}

// CheckOut closes the single active stay on a room. The room number alone
// identifies the stay; at most one can be active, so no guest name is
// needed. Two open stays is a broken invariant and is reported, never
// resolved by picking one.
func (s *CheckInService) CheckOut(roomNumber string) (models.CheckIn, error) {
	var stay models.CheckIn
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

		var stays []models.CheckIn
		if err := tx.
			Where("room_number = ? AND departed_at IS NULL", roomNumber).
			Find(&stays).Error; err != nil {
			return fmt.Errorf("failed to load active stays: %w", err)
		}
		switch {
		case len(stays) == 0:
			return fmt.Errorf("%w: no active check-in for room %s", ErrNotFound, roomNumber)
		case len(stays) > 1:
			return fmt.Errorf("%w: room %s has %d active stays", ErrDataIntegrity, roomNumber, len(stays))
		}
		stay = stays[0]

		now := time.Now().UTC()
		if err := tx.Model(&stay).Updates(map[string]interface{}{
			"departed_at": now,
			"status":      models.CheckInClosed,
		}).Error; err != nil {
			return fmt.Errorf("failed to close stay: %w", err)
		}
		stay.DepartedAt = &now
		stay.Status = models.CheckInClosed

		if room.Status != models.RoomCheckedIn {
			log.Printf("warning: room %s had an open stay while marked %s", roomNumber, room.Status)
		}

		// An outstanding reservation keeps the room reserved so the next
		// arrival finds it; otherwise the room frees up.
		var remaining int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_number = ? AND status = ?", roomNumber, models.ReservationReserved).
			Count(&remaining).Error; err != nil {
			return fmt.Errorf("failed to count remaining reservations: %w", err)
		}
		next := models.RoomAvailable
		if remaining > 0 {
			next = models.RoomReserved
		}
		if err := tx.Model(&room).Update("status", next).Error; err != nil {
			return fmt.Errorf("failed to release room %s: %w", roomNumber, err)
		}
		return nil
	})
	if txErr != nil {
		return models.CheckIn{}, txErr
	}
	return stay, nil
}

func (s *CheckInService) ListActive() ([]models.CheckIn, error) {
	var stays []models.CheckIn
	if err := s.DB.
		Where("departed_at IS NULL").
		Order("arrival_date ASC").
		Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("failed to load active stays: %w", err)
	}
	return stays, nil
}

// History returns closed stays only, most recently departed first.
func (s *CheckInService) History() ([]models.CheckIn, error) {
	var stays []models.CheckIn
	if err := s.DB.
		Where("departed_at IS NOT NULL").
		Order("departed_at DESC").
		Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("failed to load check-in history: %w", err)
	}
	return stays, nil
}
