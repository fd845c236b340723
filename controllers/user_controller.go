package controllers

import (
	"net/http"

	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	service services.UserServiceInterface
}

func NewUserController(service services.UserServiceInterface) *UserController {
	return &UserController{service: service}
}

type registerPayload struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Role          string `json:"role"`
	AdminPassword string `json:"admin_password"`
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (uc *UserController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	user, err := uc.service.Register(payload.Username, payload.Password, payload.Role, payload.AdminPassword)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (uc *UserController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request payload: "+err.Error())
		return
	}

	user, token, err := uc.service.Login(payload.Username, payload.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"username":     user.Username,
		"role":         user.Role,
	})
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.service.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := uc.service.Delete(username); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user " + username + " deleted"})
}
