package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError translates service sentinel errors into HTTP
// responses. Controllers call this once instead of switching on errors
// themselves.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, services.ErrDataIntegrity):
		log.Printf("data integrity violation: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "data_integrity", err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal", "internal server error")
	}
}
