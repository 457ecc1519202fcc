package routes

import (
	"foodhub/configs"
	"foodhub/controllers"
	"foodhub/middlewares"
	"foodhub/pkg/payment"
	"foodhub/repository"
	"foodhub/services"
	"foodhub/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, provider payment.Provider) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	payRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, foodRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo, payRepo)
	paySvc := services.NewPaymentService(db, payRepo, orderRepo, cartRepo, provider, orderSvc.Status)
	reviewSvc := services.NewReviewService(reviewRepo, orderRepo, foodRepo)

	// Live order tracking
	hub := ws.NewOrderHub(orderRepo)
	go hub.Run()
	orderSvc.SetNotifier(hub)
	paySvc.SetNotifier(hub)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	foodCtrl := controllers.NewFoodController(foodRepo, userRepo)
	restCtrl := controllers.NewRestaurantController(db)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	auth := middlewares.AuthMiddleware

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", auth(cfg.JWTSecret), authCtrl.Me)

	// Catalog (public)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/foods", foodCtrl.List)
	r.GET("/foods/:id", foodCtrl.Detail)
	r.GET("/foods/:id/reviews", reviewCtrl.ListForFood)
	r.GET("/categories", foodCtrl.Categories)

	// Profile (customer)
	profile := r.Group("/profile", auth(cfg.JWTSecret))
	{
		profile.GET("/address", authCtrl.ListAddresses)
		profile.POST("/address", authCtrl.AddAddress)
		profile.DELETE("/address/:id", authCtrl.DeleteAddress)
	}

	// Cart (customer)
	cart := r.Group("/cart", auth(cfg.JWTSecret, "customer"))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/add", cartCtrl.Add)
		cart.PUT("/updateQuantity", cartCtrl.UpdateQty)
		cart.GET("/contains/:foodId", cartCtrl.Contains)
		cart.DELETE("/item", cartCtrl.RemoveItem)
		cart.DELETE("/clear", cartCtrl.Clear)
	}

	// Orders (customer)
	order := r.Group("/order", auth(cfg.JWTSecret, "customer"))
	{
		order.POST("/create", orderCtrl.Create)
		order.GET("/my", orderCtrl.ListForMe)
		order.GET("/:id", orderCtrl.Detail)
		order.PUT("/cancel", orderCtrl.Cancel)
		order.DELETE("/:id", orderCtrl.Delete)
	}

	// Payments (customer)
	pay := r.Group("/payment", auth(cfg.JWTSecret, "customer"))
	{
		pay.PUT("/method", payCtrl.UpdateMethod)
		pay.POST("/createCheckoutSession", payCtrl.CreateCheckoutSession)
		pay.POST("/verify", payCtrl.Verify)
		pay.GET("/order/:orderId", payCtrl.GetForOrder)
	}

	// Reviews (customer)
	r.POST("/reviews", auth(cfg.JWTSecret, "customer"), reviewCtrl.Create)

	// Partner (restaurant)
	partner := r.Group("/partner", auth(cfg.JWTSecret, "restaurant", "admin"))
	{
		partner.POST("/restaurant", restCtrl.Create)
		partner.GET("/restaurant", restCtrl.Mine)
		partner.POST("/foods", foodCtrl.Create)
		partner.PATCH("/foods/:id", foodCtrl.Update)
		partner.DELETE("/foods/:id", foodCtrl.Delete)
		partner.GET("/orders", orderCtrl.ListForRestaurant)
		partner.GET("/orders/:id", orderCtrl.DetailForRestaurant)
		partner.PUT("/orders/status", orderCtrl.UpdateStatusAsRestaurant)
	}

	// Admin
	admin := r.Group("/admin", auth(cfg.JWTSecret, "admin"))
	{
		admin.GET("/orders", orderCtrl.ListAll)
		admin.PUT("/orders/status", orderCtrl.UpdateStatusAsAdmin)
		admin.DELETE("/orders/:id", orderCtrl.Delete)
	}

	// Live order status
	r.GET("/ws/orders/:id", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
