package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-ops-backend/config"
	"hotel-ops-backend/controllers"
	"hotel-ops-backend/routes"
	"hotel-ops-backend/services"
	"hotel-ops-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue auth tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Services
	userService := services.NewUserService(db, jwtSecret, os.Getenv("ADMIN_PASSWORD"))
	roomService := services.NewRoomService(db)
	reservationService := services.NewReservationService(db)
	checkInService := services.NewCheckInService(db)
	paymentService := services.NewPaymentService(db)

	// Controllers
	userController := controllers.NewUserController(userService)
	roomController := controllers.NewRoomController(roomService)
	reservationController := controllers.NewReservationController(reservationService)
	checkInController := controllers.NewCheckInController(checkInService)
	paymentController := controllers.NewPaymentController(paymentService)

	router := routes.SetupRouter(
		userController,
		roomController,
		reservationController,
		checkInController,
		paymentController,
		jwtSecret,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
