package routes

import (
	"log"

	"qr-dine/controllers"
	"qr-dine/middleware"
	"qr-dine/models"
	"qr-dine/repositories"
	"qr-dine/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, db *pgxpool.Pool) {
	restaurantRepo := repositories.NewRestaurantRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	var mailer services.Mailer
	if email, err := models.NewEmailService(); err != nil {
		log.Println("Email notifications disabled:", err)
	} else {
		mailer = email
	}

	authSvc := services.NewAuthService(restaurantRepo)
	menuSvc := services.NewMenuService(menuRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, restaurantRepo, menuRepo, mailer)

	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	publicCtrl := controllers.NewPublicController(restaurantRepo, menuSvc, orderSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	public := router.Group("/public")
	{
		public.GET("/:slug/menu", publicCtrl.Menu)
		public.GET("/:slug/tables/:tableNumber", publicCtrl.ResolveTable)
		public.POST("/:slug/orders", publicCtrl.PlaceOrder)
		public.GET("/orders/:trackCode", publicCtrl.TrackOrder)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)

		auth.GET("/menus", menuCtrl.List)
		auth.POST("/menus", menuCtrl.Create)
		auth.GET("/menu/:id", menuCtrl.Get)
		auth.PUT("/menu/:id", menuCtrl.Update)
		auth.DELETE("/menu/:id", menuCtrl.Delete)
		auth.POST("/menu/:id/photo", menuCtrl.UploadPhoto)

		auth.GET("/orders/enhanced", orderCtrl.ListEnhanced)
		auth.GET("/orders/:orderId/items", orderCtrl.GetOrderItems)
		auth.PUT("/orders/:orderId/items/:itemId/status", orderCtrl.UpdateItemStatus)
		auth.PUT("/orders/:orderId/status", orderCtrl.UpdateOrderStatus)
	}

	router.Static("/uploads", "./uploads")
}
