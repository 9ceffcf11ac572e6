package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/frogman715/hims-app-sub002/internal/handler"
	"github.com/frogman715/hims-app-sub002/internal/middleware"
	"github.com/frogman715/hims-app-sub002/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	docH *handler.DocumentHandler,
	approvalH *handler.ApprovalHandler,
	distH *handler.DistributionHandler,
	fileH *handler.FileHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Document lifecycle
	docs := protected.Group("/documents")
	docs.POST("", docH.Create)
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)
	docs.PATCH("/:id", docH.Update)
	docs.DELETE("/:id", docH.Delete)
	docs.POST("/:id/submit", docH.Submit)
	docs.GET("/:id/history", docH.History)
	docs.GET("/:id/revisions", docH.Revisions)
	docs.GET("/:id/audit", docH.AuditTrail)

	// Approval workflow
	docs.GET("/:id/approvals", approvalH.ListByDocument)
	docs.POST("/:id/approvals/:approvalID/decision", approvalH.Decide)

	// Distribution and acknowledgement
	docs.POST("/:id/distributions", distH.Distribute)
	docs.GET("/:id/distributions", distH.ListDistributions)
	docs.POST("/:id/acknowledgements", distH.Acknowledge)
	docs.GET("/:id/acknowledgements", distH.ListAcknowledgements)

	// Content uploads
	files := protected.Group("/files")
	files.POST("", fileH.Upload)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/document-register", reportH.DocumentRegister)

	return r
}
