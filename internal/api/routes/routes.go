// internal/api/routes/routes.go
package routes

import (
	"prestige-motors-api-server/config"
	"prestige-motors-api-server/internal/api/handlers"
	"prestige-motors-api-server/internal/api/middleware"
	"prestige-motors-api-server/internal/database"
	"prestige-motors-api-server/internal/s3"
	"prestige-motors-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter receives the wired dependencies and declares the routes.
func SetupRouter(
	cfg config.Config,
	repo *database.Repository,
	inquiries database.InquiryStore,
	uploader *s3.Uploader,
	wsHub *socket.Hub,
	log *zap.SugaredLogger,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	// The storefront is a browser app on another origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	jwtSecret := []byte(cfg.JWT.Secret)

	vehicleHandler := &handlers.VehicleHandler{Repo: repo}
	userHandler := &handlers.UserHandler{Repo: repo, JWTSecret: jwtSecret, TokenTTL: cfg.JWTExpiration()}
	inquiryHandler := &handlers.InquiryHandler{Store: inquiries, Log: log}
	uploadHandler := &handlers.UploadHandler{Uploader: uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: jwtSecret, Log: log}

	apiV1 := router.Group("/api/v1")
	{
		// Live catalog notices for connected storefront clients.
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Public storefront routes, no authentication.
		public := apiV1.Group("/")
		{
			public.GET("/vehicles", vehicleHandler.ListVehicles)
			public.GET("/vehicles/:id", vehicleHandler.GetVehicle)
			public.POST("/inquiries", inquiryHandler.CreateInquiry)
		}

		// Back office routes require a session token with the admin flag.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(jwtSecret))
		admin.Use(middleware.RequireAdmin())
		{
			vehicles := admin.Group("/vehicles")
			{
				vehicles.POST("/", vehicleHandler.CreateVehicle)
				vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
				vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
			}

			admin.POST("/uploads/vehicle-image", uploadHandler.UploadVehicleImage)
		}
	}

	return router
}
