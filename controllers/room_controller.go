package controllers

import (
	"net/http"

	"hotel-ops-backend/models"
	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	service services.RoomServiceInterface
}

func NewRoomController(service services.RoomServiceInterface) *RoomController {
	return &RoomController{service: service}
}

type createRoomPayload struct {
	RoomNumber string  `json:"room_number" binding:"required"`
	RoomType   string  `json:"room_type"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// GetRooms returns the reconciled room view: one entry per room with a
// single authoritative status.
func (rc *RoomController) GetRooms(c *gin.Context) {
	entries, err := rc.service.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}

// GetAvailableRooms lists available rooms. Zero availability is not an
// error: the fully-booked sentinel goes out with HTTP 200.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	total, rooms, err := rc.service.Available()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if total == 0 {
		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"message":               "We are fully booked!",
			"total_available_rooms": 0,
			"available_rooms":       []models.Room{},
		})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total_available_rooms": total,
		"available_rooms":       rooms,
	})
}

func (rc *RoomController) GetRoomSummary(c *gin.Context) {
	summary, err := rc.service.Summary()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload createRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	room, err := rc.service.Create(models.Room{
		RoomNumber: payload.RoomNumber,
		RoomType:   payload.RoomType,
		Amount:     payload.Amount,
		Status:     payload.Status,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	roomNumber := c.Param("room_number")

	var changes services.RoomUpdate
	if err := c.ShouldBindJSON(&changes); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	room, err := rc.service.Update(roomNumber, changes)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	roomNumber := c.Param("room_number")
	if err := rc.service.Delete(roomNumber); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room " + roomNumber + " deleted"})
}
