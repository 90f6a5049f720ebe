package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signage/internal/config"
	"signage/internal/handler"
	"signage/internal/logger"
	"signage/internal/metrics"
	"signage/internal/middleware"
	"signage/internal/repository"
	"signage/internal/service"
	"signage/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const serviceName = "signage-api"

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	// Setup GORM
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if cfg.RunMigrations {
		if err := repository.Migrate(db); err != nil {
			return nil, err
		}
		log.Info("database migrations applied")
	}

	blobs, err := storage.NewDiskStore(storage.Config{
		Dir:         cfg.StorageDir,
		Secret:      cfg.StorageSecret,
		BaseURL:     cfg.APIBaseURL,
		UploadTTL:   cfg.UploadURLTTL,
		DownloadTTL: cfg.DownloadURLTTL,
	})
	if err != nil {
		return nil, err
	}

	// Setup Gin
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.Middleware(log),
		metrics.NewHTTPMetrics(serviceName).Middleware(),
		gin.Recovery(),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	displayRepo := repository.NewDisplayRepository(db)
	pairingRepo := repository.NewPairingRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Initialize services
	gate := service.NewGate(userRepo, membershipRepo)
	orgService := service.NewOrganizationService(gate, orgRepo, userRepo, membershipRepo)
	boardService := service.NewBoardService(gate, boardRepo, displayRepo, userRepo, cfg.VersionRetention)
	displayService := service.NewDisplayService(gate, displayRepo, boardRepo)
	pairingService := service.NewPairingService(gate, pairingRepo, displayRepo, cfg.PairingTTL, cfg.PublicBaseURL)
	fileService := service.NewFileService(gate, fileRepo, boardRepo, blobs)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	orgHandler := handler.NewOrganizationHandler(orgService)
	boardHandler := handler.NewBoardHandler(boardService)
	displayHandler := handler.NewDisplayHandler(displayService)
	pairingHandler := handler.NewPairingHandler(pairingService)
	fileHandler := handler.NewFileHandler(fileService)
	storageHandler := handler.NewStorageHandler(blobs, cfg.MaxUploadBytes)

	// Operational routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Kiosk routes, no credentials
	r.GET("/displays/:id", displayHandler.GetByID)
	r.GET("/displays/:id/board", boardHandler.GetForDisplay)
	r.POST("/pairings", pairingHandler.Create)
	r.GET("/pairings/:id", pairingHandler.Get)
	r.GET("/pairings/:id/qr.png", pairingHandler.QRCode)

	// Signed-URL routes, the token is the credential
	r.PUT("/storage/upload", storageHandler.Upload)
	r.GET("/storage/blob", storageHandler.Download)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Organization routes
		authorized.POST("/organizations", orgHandler.Create)
		authorized.GET("/organizations", orgHandler.List)
		authorized.GET("/organizations/current", orgHandler.Current)
		authorized.POST("/organizations/:id/activate", orgHandler.Activate)
		authorized.POST("/organizations/:id/members", orgHandler.AddMember)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/:id/duplicate", boardHandler.Duplicate)

		// Version routes
		authorized.GET("/boards/:id/versions", boardHandler.ListVersions)
		authorized.GET("/versions/:id", boardHandler.GetVersion)
		authorized.POST("/versions/:id/restore", boardHandler.Restore)

		// Display routes
		authorized.POST("/displays", displayHandler.Create)
		authorized.GET("/displays", displayHandler.GetAll)
		authorized.PUT("/displays/:id", displayHandler.Update)
		authorized.DELETE("/displays/:id", displayHandler.Delete)

		// Pairing routes
		authorized.POST("/pairings/:id/display", pairingHandler.SetDisplay)

		// File routes
		authorized.POST("/files/upload-url", fileHandler.GenerateUploadURL)
		authorized.POST("/files", fileHandler.Save)
		authorized.GET("/files/url/:storage_id", fileHandler.GetURL)
		authorized.GET("/boards/:id/files", fileHandler.ListForBoard)
		authorized.DELETE("/files/:id", fileHandler.Delete)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
	s.Log.Info("server exited properly")
}
