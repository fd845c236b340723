package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	service services.ReservationServiceInterface
}

func NewReservationController(service services.ReservationServiceInterface) *ReservationController {
	return &ReservationController{service: service}
}

type reservationPayload struct {
	RoomNumber    string `json:"room_number" binding:"required"`
	GuestName     string `json:"guest_name" binding:"required"`
	ArrivalDate   string `json:"arrival_date" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

// parseDate accepts plain dates and RFC3339 timestamps, same as the
// booking forms send them.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	arrival, err := parseDate(payload.ArrivalDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", err.Error())
		return
	}
	departure, err := parseDate(payload.DepartureDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", err.Error())
		return
	}

	reservation, err := rc.service.Create(services.ReservationInput{
		RoomNumber:    payload.RoomNumber,
		GuestName:     payload.GuestName,
		ArrivalDate:   arrival,
		DepartureDate: departure,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.service.ListActive()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total_reservations": len(reservations),
		"reservations":       reservations,
	})
}

// GetReservationHistory returns fulfilled and cancelled reservations,
// newest departure first. Active reservations never appear here.
func (rc *ReservationController) GetReservationHistory(c *gin.Context) {
	reservations, err := rc.service.History()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	reference := c.Param("reference_code")
	reservation, err := rc.service.Cancel(reference)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
