package routes

import (
	"github.com/gin-gonic/gin"
	ordercontroller "github.com/infpro/storefront-api/controllers/order"
	reviewcontroller "github.com/infpro/storefront-api/controllers/review"
)

func SetupOrderRoutes(r *gin.Engine, deps Dependencies) {
	orders := r.Group("/api/orders")
	{
		// Create a new order
		orders.POST("", ordercontroller.CreateOrderHandler(deps.Orders))

		// websocket endpoint for real-time order updates
		if deps.Hub != nil {
			orders.GET("/ws", deps.Hub.ServeWS)
		}
	}
}

func SetupReviewRoutes(r *gin.Engine) {
	r.GET("/api/reviews", reviewcontroller.GetReviews())
}
