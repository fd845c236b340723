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

// RoomUpdate carries the optional fields of a room update. Nil means
// "leave unchanged".
type RoomUpdate struct {
	RoomType *string  `json:"room_type"`
	Amount   *float64 `json:"amount"`
	Status   *string  `json:"status"`
}

// RoomSummary is the per-status room count report.
type RoomSummary struct {
	TotalRooms       int64  `json:"total_rooms"`
	RoomsAvailable   int64  `json:"rooms_available"`
	RoomsReserved    int64  `json:"rooms_reserved"`
	RoomsCheckedIn   int64  `json:"rooms_checked_in"`
	RoomsMaintenance int64  `json:"rooms_maintenance"`
	Message          string `json:"message"`
}

type RoomServiceInterface interface {
	Create(room models.Room) (models.Room, error)
	List() ([]RoomStatusEntry, error)
	Available() (int64, []models.Room, error)
	Summary() (RoomSummary, error)
	Update(roomNumber string, changes RoomUpdate) (models.Room, error)
	Delete(roomNumber string) error
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) RoomServiceInterface {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room models.Room) (models.Room, error) {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return models.Room{}, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	// New rooms start empty; reserved/checked-in only ever come from the
	// reservation and check-in flows.
	if room.Status != models.RoomAvailable && room.Status != models.RoomMaintenance {
		return models.Room{}, fmt.Errorf("%w: new rooms must be available or maintenance", ErrValidation)
	}

	var existing models.Room
	err := s.DB.Where("room_number = ?", room.RoomNumber).First(&existing).Error
	if err == nil {
		return models.Room{}, fmt.Errorf("%w: room %s already exists", ErrConflict, room.RoomNumber)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Room{}, fmt.Errorf("failed to check existing room: %w", err)
	}

	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// List returns the reconciled room view: the authoritative status plus the
// dates of the active stay or upcoming reservation that backs it.
func (s *RoomService) List() ([]RoomStatusEntry, error) {
	var rooms []models.Room
	if err := s.DB.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	var stays []models.CheckIn
	if err := s.DB.Where("departed_at IS NULL").Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("failed to load active stays: %w", err)
	}

	var reservations []models.Reservation
	if err := s.DB.Where("status = ?", models.ReservationReserved).Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load active reservations: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	return ReconcileRoomStatus(rooms, stays, reservations, today), nil
}

func (s *RoomService) Available() (int64, []models.Room, error) {
	var rooms []models.Room
	if err := s.DB.
		Where("status = ?", models.RoomAvailable).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return 0, nil, fmt.Errorf("failed to load available rooms: %w", err)
	}
	return int64(len(rooms)), rooms, nil
}

func (s *RoomService) Summary() (RoomSummary, error) {
	var summary RoomSummary
	counts := []struct {
		status string
		target *int64
	}{
		{models.RoomAvailable, &summary.RoomsAvailable},
		{models.RoomReserved, &summary.RoomsReserved},
		{models.RoomCheckedIn, &summary.RoomsCheckedIn},
		{models.RoomMaintenance, &summary.RoomsMaintenance},
	}

	if err := s.DB.Model(&models.Room{}).Count(&summary.TotalRooms).Error; err != nil {
		return summary, fmt.Errorf("failed to count rooms: %w", err)
	}
	for _, c := range counts {
		if err := s.DB.Model(&models.Room{}).Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return summary, fmt.Errorf("failed to count %s rooms: %w", c.status, err)
		}
	}

	if summary.RoomsAvailable == 0 {
		summary.Message = "Fully booked!"
	} else {
		summary.Message = fmt.Sprintf("%d room(s) available.", summary.RoomsAvailable)
	}
	return summary, nil
}

func (s *RoomService) Update(roomNumber string, changes RoomUpdate) (models.Room, error) {
	var room models.Room
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_number = ?", roomNumber).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if room.Status == models.RoomCheckedIn {
			return fmt.Errorf("%w: room %s cannot be updated while checked-in", ErrConflict, roomNumber)
		}

		updates := map[string]interface{}{}
		if changes.RoomType != nil {
			updates["room_type"] = strings.TrimSpace(*changes.RoomType)
		}
		if changes.Amount != nil {
			updates["amount"] = *changes.Amount
		}
		if changes.Status != nil {
			next := strings.TrimSpace(*changes.Status)
			if !ValidRoomStatus(next) {
				return fmt.Errorf("%w: invalid status value %q", ErrValidation, next)
			}
			// Admins only move rooms in and out of maintenance; the
			// occupancy statuses belong to the reservation/check-in flows.
			if next != models.RoomAvailable && next != models.RoomMaintenance {
				return fmt.Errorf("%w: status can only be set to available or maintenance", ErrValidation)
			}
			if next != room.Status {
				if !ValidTransition(room.Status, next) {
					return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, room.Status, next)
				}
				updates["status"] = next
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update room %s: %w", roomNumber, err)
		}
		return nil
	})
	if txErr != nil {
		return models.Room{}, txErr
	}
	return room, nil
}

func (s *RoomService) Delete(roomNumber string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
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

		if room.Status == models.RoomCheckedIn || room.Status == models.RoomReserved {
			return fmt.Errorf("%w: room %s cannot be deleted while %s", ErrConflict, roomNumber, room.Status)
		}

		if err := tx.Delete(&room).Error; err != nil {
			return fmt.Errorf("failed to delete room %s: %w", roomNumber, err)
		}
		return nil
	})
}
