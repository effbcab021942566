package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"indoor-editor/internal/common/config"
	"indoor-editor/internal/common/middleware"
	"indoor-editor/internal/editor/handlers"
	"indoor-editor/internal/editor/repository"
	"indoor-editor/internal/editor/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Indoor Editor Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storeOpts, ctrlOpts := cfg.Editor()
	sessions := service.NewSessionManager(storeOpts, ctrlOpts)
	editorHandler := handlers.NewEditorHandler(sessions, repo)
	healthHandler := handlers.NewHealthHandler(repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Indoor Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(cfg.Environment))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	healthHandler.Register(app)
	handlers.RegisterDocs(app)
	editorHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Indoor Editor on %s (env: %s, floors: %d, db: %s)", addr, cfg.Environment, len(cfg.Floors), cfg.DBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
