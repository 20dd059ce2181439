package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/config"
	"github.com/acarlier/ticketeer/internal/handlers"
	"github.com/acarlier/ticketeer/internal/mailer"
	"github.com/acarlier/ticketeer/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, db, mailer.FromEnv())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, m *mailer.Mailer) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.MailerMiddleware(m))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListPublicEvents)
			eventPublic.GET("/:id", handlers.GetPublicEvent)
			eventPublic.POST("/:id/register", handlers.RegisterForEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		admin := protected.Group("/admin/events")
		{
			admin.GET("", handlers.ListOwnEvents)
			admin.POST("", handlers.CreateEvent)
			admin.GET("/:id", handlers.GetOwnEvent)
			admin.PUT("/:id", handlers.UpdateEvent)
			admin.DELETE("/:id", handlers.DeleteEvent)
			admin.POST("/:id/image", handlers.UploadEventImage)
		}

		tickets := protected.Group("/tickets")
		{
			tickets.POST("/verify", handlers.VerifyTicket)
			tickets.GET("/stats", handlers.TicketStats)
		}
	}
}
