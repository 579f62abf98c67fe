package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/marcus/scenevoice/internal/api"
	"github.com/marcus/scenevoice/internal/api/handler"
	"github.com/marcus/scenevoice/internal/api/middleware"
	"github.com/marcus/scenevoice/internal/config"
	"github.com/marcus/scenevoice/internal/describe"
	"github.com/marcus/scenevoice/internal/logger"
	"github.com/marcus/scenevoice/internal/repository"
	"github.com/marcus/scenevoice/internal/service"
	"github.com/marcus/scenevoice/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(logger.LoadFromEnv())
	logger.SetDefault(logg)

	ctx := context.Background()

	// Shared AWS configuration for Bedrock and Polly. Static credentials
	// from config win; otherwise the default provider chain applies.
	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKey != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKey, cfg.AWS.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		logg.Fatalf("Failed to load AWS config: %v", err)
	}

	vision, err := service.NewVisionModel(awsCfg, &service.VisionConfig{
		Provider:  cfg.Vision.Provider,
		Model:     cfg.Vision.Model,
		APIKey:    cfg.Vision.APIKey,
		BaseURL:   cfg.Vision.BaseURL,
		MaxTokens: cfg.Vision.MaxTokens,
	})
	if err != nil {
		logg.Fatalf("Failed to initialize vision model: %v", err)
	}
	speech := service.NewPollySpeech(awsCfg)

	resolver := describe.NewResolver(vision, speech, &describe.Config{
		MaxDimension: cfg.Image.MaxDimension,
	})

	// Optional request audit trail
	var auditRepo *repository.AuditRepository
	var auditHandler *handler.AuditHandler
	if cfg.Audit.Enabled {
		db, err := repository.InitDB(&cfg.Audit.Database)
		if err != nil {
			logg.Fatalf("Failed to initialize audit database: %v", err)
		}
		auditRepo = repository.NewAuditRepository(db)
		auditHandler = handler.NewAuditHandler(auditRepo)
		logg.Infof("Request auditing enabled (driver=%s)", cfg.Audit.Database.Driver)
	}

	// Optional narration archive
	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = storage.NewStorage(&storage.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
			PublicURL: cfg.Archive.PublicURL,
		})
		if err != nil {
			logg.Fatalf("Failed to initialize narration archive: %v", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			logg.Fatalf("Failed to ensure archive bucket: %v", err)
		}
		logg.Infof("Narration archiving enabled (bucket=%s)", cfg.Archive.Bucket)
	}

	describeHandler := handler.NewDescribeHandler(resolver, auditRepo, archive)

	router := api.SetupRouter(
		describeHandler,
		auditHandler,
		middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
		logg,
		cfg.Server.Mode,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logg.Infof("Starting API server on port %d (mode=%s, vision=%s)",
			cfg.Server.Port, cfg.Server.Mode, cfg.Vision.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatalf("Server forced to shutdown: %v", err)
	}

	logg.Info("Server exited")
}
