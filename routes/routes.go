package routes

import (
	"dinedash-api/handlers"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/restaurants", middleware.AuthOptional(), handlers.SearchRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/reviews", handlers.ListReviews)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Auth (signed-out callers only) ─────────────────────────────
	anon := r.Group("/api/auth")
	anon.Use(middleware.AnonymousOnly())
	{
		anon.POST("/register/regular", handlers.RegisterRegular)
		anon.POST("/register/restaurant", handlers.RegisterRestaurant)
		anon.POST("/register/delivery", handlers.RegisterDelivery)
		anon.POST("/login/regular", handlers.LoginRegular)
		anon.POST("/login/restaurant", handlers.LoginRestaurant)
		anon.POST("/login/delivery", handlers.LoginDelivery)
	}

	// ── Any authenticated account ──────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile/email", handlers.ChangeEmail)
		auth.PUT("/profile/password", handlers.ChangePassword)
	}

	// ── Regular customer routes ────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.UserTypeRequired(models.TypeRegular))
	{
		customer.PUT("/details", handlers.UpdateCustomerDetails)

		customer.PUT("/menu-items/:menuItemId/order-item", handlers.SetOrderItem)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrder)
		customer.POST("/orders/:id/place", handlers.PlaceOrder)

		customer.POST("/restaurants/:id/reviews", handlers.CreateReview)
		customer.PUT("/restaurants/:id/reviews", handlers.UpdateReview)
		customer.DELETE("/restaurants/:id/reviews", handlers.DeleteReview)

		customer.POST("/restaurants/:id/reservations", handlers.CreateReservation)
		customer.GET("/reservations", handlers.GetMyReservations)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(), middleware.UserTypeRequired(models.TypeRestaurant))
	{
		restaurant.PUT("/info", handlers.UpdateRestaurantInfo)
		restaurant.PUT("/hours", handlers.UpdateRestaurantHours)

		restaurant.POST("/menu", handlers.AddMenuItem)
		restaurant.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		restaurant.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		restaurant.GET("/orders", handlers.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/ready", handlers.MarkReadyForPickup)

		restaurant.POST("/tables", handlers.AddTable)
		restaurant.GET("/tables", handlers.ListTables)
		restaurant.DELETE("/tables/:tableId", handlers.DeleteTable)

		restaurant.GET("/reservations", handlers.ListReservations)
		restaurant.GET("/reservations/:id/tables", handlers.GetCandidateTables)
		restaurant.PUT("/reservations/:id", handlers.ModifyReservation)
	}

	// ── Delivery contractor routes ─────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.AuthRequired(), middleware.UserTypeRequired(models.TypeDelivery))
	{
		delivery.PUT("/details", handlers.UpdateDeliveryDetails)

		delivery.GET("/orders", handlers.GetDeliveryOrders)
		delivery.PUT("/orders/:id/accept", handlers.AcceptOrder)
		delivery.PUT("/orders/:id/reject", handlers.RejectOrder)
		delivery.PUT("/orders/:id/deliver", handlers.DeliverOrder)
	}
}
