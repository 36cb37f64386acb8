package main

import (
	"fmt"
	"log"

	"github.com/incogni100x/jltstones/internal/config"
	"github.com/incogni100x/jltstones/internal/database"
	"github.com/incogni100x/jltstones/internal/migrations"
	"github.com/incogni100x/jltstones/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Order{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables and seed the default admin
	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialization completed successfully!")
	fmt.Printf("Admin username: %s\n", cfg.AdminUsername)
}
