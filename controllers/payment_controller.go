package controllers

import (
	"net/http"
	"strconv"

	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	service services.PaymentServiceInterface
}

func NewPaymentController(service services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{service: service}
}

type paymentPayload struct {
	AmountPaid      float64 `json:"amount_paid" binding:"required"`
	DiscountAllowed float64 `json:"discount_allowed"`
	Method          string  `json:"method"`
}

func (pc *PaymentController) CreatePayment(c *gin.Context) {
	roomNumber := c.Param("room_number")

	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	payment, err := pc.service.Create(roomNumber, services.PaymentInput{
		AmountPaid:      payload.AmountPaid,
		DiscountAllowed: payload.DiscountAllowed,
		Method:          payload.Method,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (pc *PaymentController) GetPayments(c *gin.Context) {
	roomNumber := c.Param("room_number")
	payments, err := pc.service.ListForRoom(roomNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// VoidPayment cancels a recorded payment so it no longer counts toward the
// stay's balance. The row is kept for audit.
func (pc *PaymentController) VoidPayment(c *gin.Context) {
	roomNumber := c.Param("room_number")
	id, err := strconv.ParseUint(c.Param("payment_id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid payment id")
		return
	}

	payment, err := pc.service.Void(roomNumber, uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (pc *PaymentController) GetVoidPayments(c *gin.Context) {
	roomNumber := c.Param("room_number")
	payments, err := pc.service.ListVoidForRoom(roomNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}
