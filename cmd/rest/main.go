package main

import (
	"context"
	"log"

	"personal-notes-be/internal/bootstrap"
	"personal-notes-be/internal/config"
	"personal-notes-be/internal/server"
	"personal-notes-be/internal/tracer"
	"personal-notes-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op without an OTLP endpoint)
	shutdownTracer := tracer.InitTracer(cfg.App.OtlpEndpoint)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Notification Logger...")
		if err := container.NotificationService.Run(context.Background()); err != nil {
			log.Printf("Background Notification Logger Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
