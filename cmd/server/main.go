package main

import (
	"log"

	_ "signage/docs"
	"signage/internal/config"
	"signage/internal/logger"
	"signage/internal/server"

	"go.uber.org/zap"
)

// @title           Signage API
// @version         1.0
// @description     API for managing organizations, signage boards, displays and display pairing.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	zl, err := logger.Init(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "signage-api",
	})
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	defer zl.Sync()

	s, err := server.Init(cfg, zl)
	if err != nil {
		zl.Fatal("server initialization failed", zap.Error(err))
	}

	s.Run()
}
