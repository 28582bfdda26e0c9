package storage

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adya-r/travelgo/models"
)

// Connect opens a single database connection attempt.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps trying to reach the database, sleeping for
// interval between attempts, until a connection succeeds.
func ConnectWithRetry(dsn string, interval time.Duration) *gorm.DB {
	for {
		db, err := Connect(dsn)
		if err == nil {
			log.Println("connected to database")
			return db
		}
		log.Printf("error connecting to database: %v, retrying in %s", err, interval)
		time.Sleep(interval)
	}
}

// Migrate creates or updates the tables for every model the app owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.Booking{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
