package router

import (
	"myStyleCrate/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetMe, authRequired)
	users.PUT("/size-preferences", handler.UpdateSizePreferences, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupSubscriptionRoutes(api *echo.Group, handler *rest.SubscriptionHandler, authRequired echo.MiddlewareFunc) {
	subs := api.Group("/subscriptions", authRequired)

	subs.POST("", handler.CreateSubscription)
	subs.GET("", handler.GetMySubscriptions)
	subs.GET("/:id", handler.GetSubscription)
	subs.PUT("/:id", handler.UpdateSubscription)
	subs.DELETE("/:id", handler.CancelSubscription)
	subs.GET("/:id/deliveries", handler.GetDeliveries)
	subs.POST("/:id/deliveries", handler.SimulateDelivery)
	subs.POST("/:id/returns", handler.ProcessReturn)
}

func SetupSwipeRoutes(api *echo.Group, handler *rest.SwipeHandler, authRequired echo.MiddlewareFunc) {
	swipes := api.Group("/swipes", authRequired)
	swipes.POST("", handler.RecordSwipe)
	swipes.GET("", handler.GetSwipeHistory)

	likes := api.Group("/likes", authRequired)
	likes.GET("", handler.GetLikedItems)
	likes.POST("/:product_id", handler.LikeItem)
	likes.DELETE("/:product_id", handler.UnlikeItem)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.GetRecommendations)
	reco.GET("/preferences", handler.GetPreferences)
}

func SetupMarketplaceRoutes(api *echo.Group, handler *rest.MarketplaceHandler, authRequired echo.MiddlewareFunc) {
	marketplace := api.Group("/marketplace")
	marketplace.GET("", handler.GetListings)
	marketplace.POST("/:id/purchase", handler.Purchase, authRequired)
}

func SetupAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.GET("/analytics", handler.GetOverview)
}
