package migrations

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/repository"
)

// RunMigrations creates or updates the schema and seeds the default admin.
// Orders are insert-only, so nothing here ever drops a table; the
// destructive reset lives in scripts/init-db.go.
func RunMigrations(db *gorm.DB, adminUsername, adminPassword, adminEmail string) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultAdmin(db, adminUsername, adminPassword, adminEmail); err != nil {
		log.Printf("Warning: Failed to create default admin: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultAdmin seeds the admin account used by the intake form.
func createDefaultAdmin(db *gorm.DB, username, password, email string) error {
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	existing, err := userRepo.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		log.Println("Admin user already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(models.SuperAdmin),
		IsActive:     true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("Admin user %q created", username)
	return nil
}
