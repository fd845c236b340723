package services

import (
	"testing"
	"time"

	"hotel-ops-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory database. Capped at one
// connection so every query sees the same memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.CheckIn{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func mustCreateRoom(t *testing.T, db *gorm.DB, number, status string, amount float64) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number, RoomType: "Standard", Amount: amount, Status: status}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return room
}

func loadRoom(t *testing.T, db *gorm.DB, number string) models.Room {
	t.Helper()
	var room models.Room
	if err := db.Where("room_number = ?", number).First(&room).Error; err != nil {
		t.Fatalf("load room %s: %v", number, err)
	}
	return room
}

func day(offset int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offset)
}
