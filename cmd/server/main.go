package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ajoapp/backend/internal/ajo"
	"github.com/ajoapp/backend/internal/auth"
	"github.com/ajoapp/backend/internal/clock"
	"github.com/ajoapp/backend/internal/config"
	"github.com/ajoapp/backend/internal/escrow"
	"github.com/ajoapp/backend/internal/handlers"
	"github.com/ajoapp/backend/internal/middleware"
	"github.com/ajoapp/backend/internal/routes"
	"github.com/ajoapp/backend/internal/storage/sqlite"
	"github.com/ajoapp/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("AJO_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.Database.Path)

	ledger := escrow.NewLedger()
	registry := ajo.NewRegistry(store, ledger, clock.System{})

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.TokenExpiry())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	routes.Setup(r,
		handlers.NewAuthHandler(authenticator, jwtManager),
		handlers.NewGroupHandler(registry),
		handlers.NewEscrowHandler(ledger),
		jwtManager,
	)

	slog.Info("server starting", "addr", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
