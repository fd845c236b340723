package controllers

import (
	"net/http"

	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	service services.CheckInServiceInterface
}

func NewCheckInController(service services.CheckInServiceInterface) *CheckInController {
	return &CheckInController{service: service}
}

type checkInPayload struct {
	RoomNumber         string                       `json:"room_number" binding:"required"`
	GuestName          string                       `json:"guest_name" binding:"required"`
	ArrivalDate        string                       `json:"arrival_date" binding:"required"`
	DepartureDate      string                       `json:"departure_date" binding:"required"`
	AccompanyingGuests []services.AccompanyingGuest `json:"accompanying_guests"`
}

func (cc *CheckInController) CheckIn(c *gin.Context) {
	var payload checkInPayload
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

	stay, err := cc.service.CheckIn(services.CheckInInput{
		RoomNumber:         payload.RoomNumber,
		GuestName:          payload.GuestName,
		ArrivalDate:        arrival,
		DepartureDate:      departure,
		AccompanyingGuests: payload.AccompanyingGuests,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stay)
}

// CheckOut closes the active stay on a room. The room number in the URL is
// the only identification needed; at most one stay can be active.
func (cc *CheckInController) CheckOut(c *gin.Context) {
	roomNumber := c.Param("room_number")
	stay, err := cc.service.CheckOut(roomNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

func (cc *CheckInController) GetActiveCheckIns(c *gin.Context) {
	stays, err := cc.service.ListActive()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total_checked_in_guests": len(stays),
		"checked_in_guests":       stays,
	})
}

// GetCheckInHistory returns closed stays, most recent departure first.
// Guest identity stays on the records for audit.
func (cc *CheckInController) GetCheckInHistory(c *gin.Context) {
	stays, err := cc.service.History()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}
