package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the database connection. Postgres is the default
// driver; DB_DRIVER=sqlite switches to a local file for development.
func ConnectDatabase() {
	var dialector gorm.Dialector

	switch os.Getenv("DB_DRIVER") {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "liga.db"
		}
		dialector = sqlite.Open(path)
	default:
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				envOrDefault("DB_HOST", "localhost"),
				envOrDefault("DB_USER", "postgres"),
				os.Getenv("DB_PASSWORD"),
				envOrDefault("DB_NAME", "liga"),
				envOrDefault("DB_PORT", "5432"),
				envOrDefault("DB_SSLMODE", "disable"),
			)
		}
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db
	log.Println("Database connected")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
