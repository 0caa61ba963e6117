package main

import (
	"school-erp-service/internal/handler"
	"school-erp-service/internal/middleware"
	"school-erp-service/internal/session"
	"school-erp-service/internal/store"
	"school-erp-service/pkg/config"
	"school-erp-service/pkg/jwtutil"
	"school-erp-service/pkg/logger"
	"school-erp-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting school ERP service",
		zap.String("environment", cfg.Server.Env),
		zap.String("store_backend", cfg.Store.Backend))

	// Select the snapshot backend
	var backend store.SnapshotBackend
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := store.NewPostgresBackend(&cfg.DB)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		backend = pg
	default:
		backend = store.NewFileBackend(cfg.Store.Path)
	}

	// Load the snapshot, seeding on first run or corruption
	st := store.New(backend, store.SeedOptions{
		SuperUsername: cfg.Seed.SuperUsername,
		SuperPassword: cfg.Seed.SuperPassword,
		DemoData:      cfg.Seed.DemoData,
	}, log)
	if err := st.LoadOrInitialize(); err != nil {
		log.Fatal("Failed to initialize record store", zap.Error(err))
	}

	// Initialize JWT utils
	jwtutil.Initialize(&cfg.JWT)

	// Initialize metrics
	prometheus.InitMetrics(cfg)
	prometheus.SchoolsGauge.Set(float64(len(st.Schools())))

	// Session context over the store
	sessions := session.NewManager(st, log)
	if sc, ok := sessions.LoadSession(); ok {
		log.Info("Active school session restored", zap.String("school", sc.Name))
	}

	handler.Initialize(sessions)

	// Create a new echo instance
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/super/login", handler.SuperLogin)

	// Protected routes
	api := e.Group("/api", middleware.AuthMiddleware)
	api.POST("/auth/logout", handler.Logout)
	api.GET("/auth/session", handler.Session)
	api.POST("/auth/super/logout", handler.SuperLogout)
	api.GET("/auth/super/status", handler.SuperStatus)

	// Operator-only tenant directory management
	schools := api.Group("/schools", middleware.RequireSuper)
	schools.GET("", handler.ListSchools)
	schools.POST("", handler.CreateSchool)
	schools.PUT("/:id", handler.UpdateSchool)
	schools.DELETE("/:id", handler.DeleteSchool)
	api.POST("/auth/super/password", handler.ChangeSuperPassword, middleware.RequireSuper)

	// School-scoped record access
	data := api.Group("/data", middleware.RequireSchool)
	data.GET("", handler.GetActiveData)
	data.GET("/:collection", handler.GetCollection)
	data.PUT("/:collection", handler.ReplaceCollection)
	api.PUT("/profile", handler.SaveProfile, middleware.RequireSchool)

	// Start the server
	log.Info("Server started", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
