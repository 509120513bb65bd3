package main

import (
	"log"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/model"
	"personal-notes-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to DB: %v", err)
	}

	color.Cyan("Running migrations...")

	err = db.AutoMigrate(
		&model.User{},
		&model.UserProvider{},
		&model.Note{},
		&model.AuditLog{},
	)
	if err != nil {
		color.Red("Migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Migrations completed: users, user_providers, notes, audit_logs")
}
