package router

import (
	"spendwise/internal/config"
	"spendwise/internal/handler"
	"spendwise/internal/middleware"
	"spendwise/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all handlers.
func SetupRouter(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	walletHandler := handler.NewWalletHandler(db)
	protected.POST("/wallets", walletHandler.CreateWallet)
	protected.GET("/wallets", walletHandler.ListWallets)
	protected.GET("/wallets/:id", walletHandler.GetWallet)

	processor := schedule.NewProcessor(db, log)
	sourceHandler := handler.NewSourceHandler(db, processor)
	protected.POST("/sources", sourceHandler.CreateSource)
	protected.GET("/sources", sourceHandler.ListSources)
	protected.PUT("/sources/:id", sourceHandler.UpdateSource)
	protected.DELETE("/sources/:id", sourceHandler.DeleteSource)

	txHandler := handler.NewTransactionHandler(db, cfg.App.PageSize)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.DELETE("/transactions/:id", txHandler.DeleteTransaction)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	uploadHandler := handler.NewUploadHandler(cfg.Upload)
	protected.POST("/uploads", uploadHandler.Upload)

	schedulerHandler := handler.NewSchedulerHandler(schedule.NewRunner(db, log))
	protected.POST("/scheduler/run", schedulerHandler.Run)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
