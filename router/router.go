package router

import (
	"net/http"
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires the HTTP surface. sheets may be nil when the backup
// destination is not configured; the backup route then answers 503.
func SetupRouter(cfg *config.Config, sheets service.SheetWriter, notifier *service.Notifier) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		api.MethodNotAllowed(c)
	})
	r.NoRoute(func(c *gin.Context) {
		api.Error(c, http.StatusNotFound, "Not found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := api.NewAuthHandler(cfg)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Everything else sits behind the shared-secret gate and needs the
	// store.
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired(), middleware.RequireStore())
	{
		incomeHandler := api.NewIncomeHandler()
		authorized.GET("/income", incomeHandler.List)
		authorized.POST("/income", incomeHandler.Create)
		authorized.PUT("/income", incomeHandler.Replace)
		authorized.DELETE("/income", incomeHandler.Delete)

		expenseHandler := api.NewExpenseHandler()
		authorized.GET("/expenses", expenseHandler.List)
		authorized.POST("/expenses", expenseHandler.Create)
		authorized.PUT("/expenses", expenseHandler.Replace)
		authorized.DELETE("/expenses", expenseHandler.Delete)

		cashHandler := api.NewCashHandler()
		authorized.GET("/cash", cashHandler.Get)
		authorized.POST("/cash", cashHandler.Create)
		authorized.PUT("/cash", cashHandler.Replace)
		authorized.DELETE("/cash", cashHandler.Delete)

		businessHandler := api.NewBusinessHandler()
		authorized.GET("/business", businessHandler.Get)
		authorized.POST("/business", businessHandler.Save)
		authorized.PUT("/business", businessHandler.Save)

		backupHandler := api.NewBackupHandler(sheets, notifier, &cfg.Sheets)
		authorized.POST("/backup", backupHandler.Run)

		exportHandler := api.NewExportHandler()
		authorized.GET("/export/json", exportHandler.ExportJSON)
		authorized.GET("/export/excel", exportHandler.ExportExcel)
	}

	return r
}

// CORSMiddleware sets the permissive CORS headers every response carries
// and answers preflight requests with an empty 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
