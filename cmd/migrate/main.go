package main

import (
	"log"
	"os"

	"ai-contact-search-be/internal/model"
	"ai-contact-search-be/pkg/database"

	"github.com/joho/godotenv"
)

// Creates the contact search tables on a development database. Production
// schemas are owned by the contact sync service.
func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(os.Getenv("DB_DRIVER"), dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for contact search tables...")

	models := []interface{}{
		&model.User{},
		&model.Contact{},
		&model.UserContact{},
		&model.UserContactEmbedding{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
