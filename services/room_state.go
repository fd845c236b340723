package services

import (
	"time"

	"hotel-ops-backend/models"
)

// allowedTransitions is the per-room state machine. Keys are the current
// status, values the set of statuses reachable from it.
var allowedTransitions = map[string][]string{
	models.RoomAvailable: {models.RoomReserved, models.RoomCheckedIn, models.RoomMaintenance},
	models.RoomReserved:  {models.RoomCheckedIn, models.RoomAvailable},
	// checked-in -> reserved happens at check-out when another active
	// reservation still claims the room.
	models.RoomCheckedIn:   {models.RoomAvailable, models.RoomReserved},
	models.RoomMaintenance: {models.RoomAvailable},
}

// ValidTransition reports whether a room may move from one status to
// another. Self-transitions are not permitted.
func ValidTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidRoomStatus reports whether s is a known room status value.
func ValidRoomStatus(s string) bool {
	switch s {
	case models.RoomAvailable, models.RoomReserved, models.RoomCheckedIn, models.RoomMaintenance:
		return true
	}
	return false
}

// Overlaps reports whether two date ranges overlap. Ranges are half-open:
// a departure on the same day as another arrival does not overlap.
func Overlaps(aArrival, aDeparture, bArrival, bDeparture time.Time) bool {
	return aArrival.Before(bDeparture) && aDeparture.After(bArrival)
}

// RoomStatusEntry is one row of the reconciled room view: exactly one
// status per room plus the dates and guest of the record that won.
type RoomStatusEntry struct {
	RoomNumber    string     `json:"room_number"`
	RoomType      string     `json:"room_type"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	GuestName     string     `json:"guest_name,omitempty"`
	ArrivalDate   *time.Time `json:"arrival_date,omitempty"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
}

// ReconcileRoomStatus builds the authoritative per-room view from the room
// set, the active stays and the active reservations. Precedence when the
// sources disagree: an active stay wins, then a reservation departing today
// or later, then the status stored on the room. Each room appears exactly
// once regardless of how many source records mention it.
func ReconcileRoomStatus(rooms []models.Room, stays []models.CheckIn, reservations []models.Reservation, today time.Time) []RoomStatusEntry {
	stayByRoom := make(map[string]*models.CheckIn, len(stays))
	for i := range stays {
		if stays[i].DepartedAt != nil {
			continue
		}
		if _, ok := stayByRoom[stays[i].RoomNumber]; !ok {
			stayByRoom[stays[i].RoomNumber] = &stays[i]
		}
	}

	// Earliest active reservation per room that has not already departed.
	resByRoom := make(map[string]*models.Reservation, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		if r.Status != models.ReservationReserved || r.DepartureDate.Before(today) {
			continue
		}
		if cur, ok := resByRoom[r.RoomNumber]; !ok || r.ArrivalDate.Before(cur.ArrivalDate) {
			resByRoom[r.RoomNumber] = r
		}
	}

	entries := make([]RoomStatusEntry, 0, len(rooms))
	for _, room := range rooms {
		entry := RoomStatusEntry{
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Amount:     room.Amount,
			Status:     room.Status,
		}
		if stay, ok := stayByRoom[room.RoomNumber]; ok {
			entry.Status = models.RoomCheckedIn
			entry.GuestName = stay.GuestName
			arrival, departure := stay.ArrivalDate, stay.DepartureDate
			entry.ArrivalDate = &arrival
			entry.DepartureDate = &departure
		} else if res, ok := resByRoom[room.RoomNumber]; ok {
			entry.Status = models.RoomReserved
			entry.GuestName = res.GuestName
			arrival, departure := res.ArrivalDate, res.DepartureDate
			entry.ArrivalDate = &arrival
			entry.DepartureDate = &departure
		}
		entries = append(entries, entry)
	}
	return entries
}
