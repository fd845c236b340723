package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-ops-backend/controllers"
	"hotel-ops-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree. Room views are
// public; everything that mutates state needs a token, room and user
// administration needs the admin role.
func SetupRouter(
	uc *controllers.UserController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	cc *controllers.CheckInController,
	pc *controllers.PaymentController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.RequireAuth(jwtSecret)
	admin := middleware.RequireRole("admin")

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", uc.Register)
			users.POST("/login", uc.Login)
			users.GET("", auth, uc.GetUsers)
			users.DELETE("/:username", auth, admin, uc.DeleteUser)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/available", rc.GetAvailableRooms)
			rooms.GET("/summary", auth, rc.GetRoomSummary)
			rooms.POST("", auth, admin, rc.CreateRoom)
			rooms.PUT("/:room_number", auth, admin, rc.UpdateRoom)
			rooms.PATCH("/:room_number", auth, admin, rc.UpdateRoom)
			rooms.DELETE("/:room_number", auth, admin, rc.DeleteRoom)
		}

		reservations := api.Group("/reservations", auth)
		{
			reservations.POST("", resc.CreateReservation)
			reservations.GET("", resc.GetReservations)
			reservations.GET("/history", resc.GetReservationHistory)
			reservations.DELETE("/:reference_code", admin, resc.CancelReservation)
		}

		checkins := api.Group("/checkins", auth)
		{
			checkins.POST("", cc.CheckIn)
			checkins.GET("", cc.GetActiveCheckIns)
			checkins.GET("/history", cc.GetCheckInHistory)
			checkins.POST("/:room_number/checkout", cc.CheckOut)
		}

		payments := api.Group("/payments", auth)
		{
			payments.POST("/:room_number", pc.CreatePayment)
			payments.GET("/:room_number", pc.GetPayments)
			payments.GET("/:room_number/void", pc.GetVoidPayments)
			payments.PUT("/:room_number/void/:payment_id", admin, pc.VoidPayment)
		}
	}

	return r
}
