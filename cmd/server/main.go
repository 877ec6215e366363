package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"hostel-backend/internal/archive"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/cache"
	"hostel-backend/internal/config"
	"hostel-backend/internal/database"
	"hostel-backend/internal/db"
	"hostel-backend/internal/handlers"
	"hostel-backend/internal/health"
	h "hostel-backend/internal/http"
	"hostel-backend/internal/middleware"
	"hostel-backend/internal/monitoring"
	"hostel-backend/internal/notify"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/services"
	"hostel-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (room listings will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem so the binary
	// is self-contained.
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Health checker and monitoring side-server
	healthChecker := health.NewHealthChecker(pool)
	go monitoring.NewServer(pool, cfg.Server.MonitoringPort).Start()

	// JWT validation for tokens issued by the identity service
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	roomRepo := repositories.NewRoomRepository(pool)
	bedRepo := repositories.NewBedRepository(pool)
	allocationRepo := repositories.NewAllocationRepository(pool)

	// Allocation event feed for staff dashboards
	hub := notify.NewHub()
	go hub.Run()

	// Services
	allocationService := services.NewAllocationService(roomRepo, bedRepo, allocationRepo)
	allocationService.SetNotifier(hub)

	reportService := services.NewReportService(roomRepo, allocationRepo)
	if archiver, err := archive.New(cfg); err != nil {
		log.Printf("[Archive] Report archiving disabled: %v", err)
	} else {
		reportService.SetArchiver(archiver)
	}

	// Handlers
	roomHandler := handlers.NewRoomHandler(allocationService)
	allocationHandler := handlers.NewAllocationHandler(allocationService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(roomHandler, allocationHandler, reportHandler, healthHandler, authMiddleware, hub)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
