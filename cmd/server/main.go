package main

import (
	"fmt"
	"log"

	_ "github.com/frogman715/hims-app-sub002/docs"
	"github.com/frogman715/hims-app-sub002/internal/config"
	"github.com/frogman715/hims-app-sub002/internal/handler"
	"github.com/frogman715/hims-app-sub002/internal/notify/noop"
	"github.com/frogman715/hims-app-sub002/internal/notify/ses"
	"github.com/frogman715/hims-app-sub002/internal/port"
	"github.com/frogman715/hims-app-sub002/internal/repository/postgres"
	"github.com/frogman715/hims-app-sub002/internal/router"
	"github.com/frogman715/hims-app-sub002/internal/service"
	s3storage "github.com/frogman715/hims-app-sub002/internal/storage/s3"
)

// @title HIMS Document Control API
// @version 1.0
// @description Document control lifecycle, approval workflow, distribution and acknowledgement tracking.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	revisionRepo := postgres.NewRevisionRepo(db)
	approvalRepo := postgres.NewApprovalRepo(db)
	distRepo := postgres.NewDistributionRepo(db)
	ackRepo := postgres.NewAcknowledgementRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	registerRepo := postgres.NewRegisterRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize notifier
	var notifier port.Notifier
	if cfg.Email.Provider == "ses" {
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	} else {
		notifier = noop.NewNoopNotifier()
	}

	// Approval flow policy
	levels, err := service.ApprovalLevelsFromConfig(cfg.Approval.Levels)
	if err != nil {
		return fmt.Errorf("invalid approval flow config: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	docSvc := service.NewDocumentService(docRepo, userRepo, auditRepo, levels)
	approvalSvc := service.NewApprovalService(approvalRepo, auditRepo)
	distSvc := service.NewDistributionService(distRepo, userRepo, auditRepo, notifier)
	ackSvc := service.NewAcknowledgementService(ackRepo, auditRepo)
	fileSvc := service.NewFileService(s3Client, &cfg.S3)
	reportSvc := service.NewReportService(registerRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	docH := handler.NewDocumentHandler(docSvc, revisionRepo, auditRepo)
	approvalH := handler.NewApprovalHandler(approvalSvc)
	distH := handler.NewDistributionHandler(distSvc, ackSvc)
	fileH := handler.NewFileHandler(fileSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, docH, approvalH, distH, fileH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
