package services

import (
	"errors"
	"testing"

	"hotel-ops-backend/models"
)

func TestCreateReservationFlipsRoomAndRejectsOverlap(t *testing.T) {
	db := openTestDB(t)
	mustCreateRoom(t, db, "101", models.RoomAvailable, 100)
	svc := NewReservationService(db)

	first, err := svc.Create(ReservationInput{
		RoomNumber: "101", GuestName: "Ada Lovelace",
		ArrivalDate: day(1), DepartureDate: day(4),
	})
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	if first.ReferenceCode == "" || first.Status != models.ReservationReserved {
		t.Errorf("unexpected reservation: %+v", first)
	}
	if room := loadRoom(t, db, "101"); room.Status != models.RoomReserved {
		t.Errorf("room status = %q, want reserved", room.Status)
	}

	_, err = svc.Create(ReservationInput{
		RoomNumber: "101", GuestName: "Grace Hopper",
		ArrivalDate: day(3), DepartureDate: day(6),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("overlapping reservation: got %v, want conflict", err)
	}

	// Back-to-back is not an overlap.
	if _, err := svc.Create(ReservationInput{
		RoomNumber: "101", GuestName: "Grace Hopper",
		ArrivalDate: day(4), DepartureDate: day(6),
	}); err != nil {
		t.Fatalf("back-to-back reservation: %v", err)
	}
}

func TestCancelReservationFreesRoomWhenLastOne(t *testing.T) {
	db := openTestDB(t)
	mustCreateRoom(t, db, "101", models.RoomAvailable, 100)
	svc := NewReservationService(db)

	first, err := svc.Create(ReservationInput{
		RoomNumber: "101", GuestName: "Ada Lovelace",
		ArrivalDate: day(1), DepartureDate: day(3),
	})
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	second, err := svc.Create(ReservationInput{
		RoomNumber: "101", GuestName: "Grace Hopper",
		ArrivalDate: day(5), DepartureDate: day(7),
	})
	if err != nil {
		t.Fatalf("second reservation: %v", err)
	}

	if _, err := svc.Cancel(first.ReferenceCode); err != nil {
		t.Fatalf("cancel first: %v", err)
	}
	if room := loadRoom(t, db, "101"); room.Status != models.RoomReserved {
		t.Errorf("room status = %q, want reserved while another reservation remains", room.Status)
	}

	if _, err := svc.Cancel(second.ReferenceCode); err != nil {
		t.Fatalf("cancel second: %v", err)
	}
	if room := loadRoom(t, db, "101"); room.Status != models.RoomAvailable {
		t.Errorf("room status = %q, want available after the last cancellation", room.Status)
	}

	// Cancelled reservations are history, not cancellable again.
	if _, err := svc.Cancel(first.ReferenceCode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("re-cancel: got %v, want not found", err)
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history = %d entries, want 2", len(history))
	}
	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active = %d entries, want 0", len(active))
	}
}

func TestCreateReservationMaintenanceRoom(t *testing.T) {
	db := openTestDB(t)
	mustCreateRoom(t, db, "101", models.RoomMaintenance, 100)

	_, err := NewReservationService(db).Create(ReservationInput{
		RoomNumber: "101", GuestName: "Ada Lovelace",
		ArrivalDate: day(1), DepartureDate: day(3),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("reservation on maintenance room: got %v, want conflict", err)
	}
}
