package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"hotel-ops-backend/models"
	"hotel-ops-backend/services"

	"github.com/gin-gonic/gin"
)

type stubCheckInService struct {
	lastInput    services.CheckInInput
	stay         models.CheckIn
	checkInErr   error
	lastCheckOut string
	closed       models.CheckIn
	checkOutErr  error
	active       []models.CheckIn
	activeErr    error
	history      []models.CheckIn
	historyErr   error
}

func (s *stubCheckInService) CheckIn(in services.CheckInInput) (models.CheckIn, error) {
	s.lastInput = in
	return s.stay, s.checkInErr
}
func (s *stubCheckInService) CheckOut(roomNumber string) (models.CheckIn, error) {
	s.lastCheckOut = roomNumber
	return s.closed, s.checkOutErr
}
func (s *stubCheckInService) ListActive() ([]models.CheckIn, error) { return s.active, s.activeErr }
func (s *stubCheckInService) History() ([]models.CheckIn, error)    { return s.history, s.historyErr }

func checkInRouter(svc services.CheckInServiceInterface) *gin.Engine {
	cc := NewCheckInController(svc)
	r := gin.New()
	r.POST("/checkins", cc.CheckIn)
	r.POST("/checkins/:room_number/checkout", cc.CheckOut)
	r.GET("/checkins", cc.GetActiveCheckIns)
	r.GET("/checkins/history", cc.GetCheckInHistory)
	return r
}

func TestCheckInSuccess(t *testing.T) {
	svc := &stubCheckInService{stay: models.CheckIn{RoomNumber: "101", GuestName: "Ada"}}
	body := `{"room_number":"101","guest_name":"Ada","arrival_date":"2026-09-01","departure_date":"2026-09-04",` +
		`"accompanying_guests":[{"full_name":"Charles","type":"adult"}]}`
	rec := performJSON(checkInRouter(svc), http.MethodPost, "/checkins", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if len(svc.lastInput.AccompanyingGuests) != 1 || svc.lastInput.AccompanyingGuests[0].FullName != "Charles" {
		t.Errorf("accompanying guests not forwarded: %+v", svc.lastInput.AccompanyingGuests)
	}
}

func TestCheckInInvalidDate(t *testing.T) {
	body := `{"room_number":"101","guest_name":"Ada","arrival_date":"tomorrow","departure_date":"2026-09-04"}`
	rec := performJSON(checkInRouter(&stubCheckInService{}), http.MethodPost, "/checkins", body)
	wantErrorKind(t, rec, http.StatusBadRequest, "validation")
}

func TestCheckInOccupiedRoomConflict(t *testing.T) {
	svc := &stubCheckInService{
		checkInErr: fmt.Errorf("%w: room 101 is already checked-in", services.ErrConflict),
	}
	body := `{"room_number":"101","guest_name":"Ada","arrival_date":"2026-09-01","departure_date":"2026-09-04"}`
	rec := performJSON(checkInRouter(svc), http.MethodPost, "/checkins", body)
	wantErrorKind(t, rec, http.StatusConflict, "conflict")
}

func TestCheckOutByRoomNumber(t *testing.T) {
	svc := &stubCheckInService{closed: models.CheckIn{RoomNumber: "101", Status: models.CheckInClosed}}
	rec := performJSON(checkInRouter(svc), http.MethodPost, "/checkins/101/checkout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastCheckOut != "101" {
		t.Errorf("room number passed to service = %q, want %q", svc.lastCheckOut, "101")
	}
}

func TestCheckOutNoActiveStay(t *testing.T) {
	svc := &stubCheckInService{
		checkOutErr: fmt.Errorf("%w: no active check-in for room 101", services.ErrNotFound),
	}
	rec := performJSON(checkInRouter(svc), http.MethodPost, "/checkins/101/checkout", "")
	wantErrorKind(t, rec, http.StatusNotFound, "not_found")
}

func TestCheckOutMultipleActiveStays(t *testing.T) {
	svc := &stubCheckInService{
		checkOutErr: fmt.Errorf("%w: room 101 has 2 open stays", services.ErrDataIntegrity),
	}
	rec := performJSON(checkInRouter(svc), http.MethodPost, "/checkins/101/checkout", "")
	wantErrorKind(t, rec, http.StatusInternalServerError, "data_integrity")
}

func TestGetActiveCheckInsCount(t *testing.T) {
	svc := &stubCheckInService{active: []models.CheckIn{
		{RoomNumber: "101"}, {RoomNumber: "102"},
	}}
	rec := performJSON(checkInRouter(svc), http.MethodGet, "/checkins", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var data struct {
		TotalCheckedInGuests int              `json:"total_checked_in_guests"`
		CheckedInGuests      []models.CheckIn `json:"checked_in_guests"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.TotalCheckedInGuests != 2 || len(data.CheckedInGuests) != 2 {
		t.Errorf("unexpected payload: %+v", data)
	}
}

func TestGetCheckInHistory(t *testing.T) {
	svc := &stubCheckInService{history: []models.CheckIn{
		{RoomNumber: "101", Status: models.CheckInClosed},
	}}
	rec := performJSON(checkInRouter(svc), http.MethodGet, "/checkins/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var history []models.CheckIn
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(history) != 1 || history[0].Status != models.CheckInClosed {
		t.Errorf("unexpected history: %+v", history)
	}
}
