package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/controller"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"golang.org/x/time/rate"
)

type Router struct {
	authController  *controller.AuthController
	storeController *controller.StoreController
	ownerController *controller.OwnerController
	userController  *controller.UserController
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	ownerController *controller.OwnerController,
	userController *controller.UserController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:  authController,
		storeController: storeController,
		ownerController: ownerController,
		userController:  userController,
		authMiddleware:  authMiddleware,
		config:          cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "RateHub API is running",
		})
	})

	// 10 req/s per IP with a burst of 20, on credential endpoints only.
	authLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authLimiter.Middleware(), r.authController.Signup)
			auth.POST("/login", authLimiter.Middleware(), r.authController.Login)
			auth.POST("/login/admin", authLimiter.Middleware(), r.authController.AdminLogin)
			auth.PUT("/update-password",
				r.authMiddleware.Authenticate(),
				r.authController.UpdatePassword,
			)
		}

		stores := api.Group("/stores")
		{
			// Public browsing; everything else on the group needs a token.
			stores.GET("", r.storeController.ListStores)

			stores.GET("/stats",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.userController.Stats,
			)

			owner := stores.Group("/owner")
			owner.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleStoreOwner))
			{
				owner.GET("/dashboard", r.ownerController.Dashboard)
				owner.POST("", r.ownerController.CreateStore)
				owner.PUT("/:id", r.ownerController.UpdateStore)
				owner.DELETE("/:id", r.ownerController.DeleteStore)
			}

			stores.POST("/:id/rate",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleUser),
				r.storeController.RateStore,
			)

			stores.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.storeController.CreateStore,
			)
			stores.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.storeController.UpdateStore,
			)
			stores.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.storeController.DeleteStore,
			)
		}

		users := api.Group("/users")
		users.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", r.userController.ListUsers)
			users.POST("", r.userController.CreateUser)
			users.PUT("/:id", r.userController.UpdateUser)
			users.DELETE("/:id", r.userController.DeleteUser)
		}

		api.GET("/stats",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin),
			r.userController.Stats,
		)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
