package main

import (
	"errors"
	"log"
	"os"

	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm"
)

// Bootstraps the first admin account from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD, plus optional demo data with -demo. Safe to run
// repeatedly: existing accounts are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	if !util.ValidPassword(adminPassword) {
		log.Fatal("SEED_ADMIN_PASSWORD does not meet the password policy (8-16 chars, 1 uppercase, 1 special)")
	}

	created, err := ensureUser(db.GetDB(), "Platform Administrator Account", adminEmail, adminPassword, "", model.RoleAdmin)
	if err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	if created {
		log.Printf("Admin account created: %s", adminEmail)
	} else {
		log.Printf("Admin account already exists: %s", adminEmail)
	}

	if len(os.Args) > 1 && os.Args[1] == "-demo" {
		if err := seedDemoData(db.GetDB()); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		log.Println("Demo data seeded")
	}
}

func ensureUser(gdb *gorm.DB, name, email, password, address string, role model.UserRole) (bool, error) {
	email = util.NormalizeEmail(email)

	var existing model.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return false, err
	}

	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      address,
		Role:         role,
	}
	if err := gdb.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}

func seedDemoData(gdb *gorm.DB) error {
	ownerCreated, err := ensureUser(gdb,
		"Demonstration Store Owner Account",
		"owner@example.com",
		"Owner@Pass1",
		"12 Market Street, Springfield",
		model.RoleStoreOwner,
	)
	if err != nil {
		return err
	}

	if _, err := ensureUser(gdb,
		"Demonstration Regular User Account",
		"user@example.com",
		"User@Pass1",
		"34 Elm Avenue, Springfield",
		model.RoleUser,
	); err != nil {
		return err
	}

	if !ownerCreated {
		return nil
	}

	var owner model.User
	if err := gdb.Where("email = ?", "owner@example.com").First(&owner).Error; err != nil {
		return err
	}

	store := model.Store{
		Name:    "Springfield General Store and Supplies",
		Address: "12 Market Street, Springfield",
		OwnerID: owner.ID,
	}
	return gdb.Create(&store).Error
}
