package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhanushgc/HireMind/internal/bootstrap"
	"github.com/dhanushgc/HireMind/internal/config"
	"github.com/dhanushgc/HireMind/internal/server"
	"github.com/dhanushgc/HireMind/internal/tracer"
	"github.com/dhanushgc/HireMind/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional when sessions live in memory)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Failed to start background services: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		container.Logger.Info("Server", "Shutting down", nil)
		_ = srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("Server", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
