package reviewcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/models"
)

var reviews = []models.Review{
	{ID: "r1", Name: "Mateus", Rating: 5, Text: "Montagem profissional e muito rápida!"},
	{ID: "r2", Name: "Larissa", Rating: 5, Text: "Suporte excelente e ótimo preço."},
}

// Reviews returns a copy of the built-in customer reviews.
func Reviews() []models.Review {
	out := make([]models.Review, len(reviews))
	copy(out, reviews)
	return out
}

// GET /api/reviews
func GetReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Reviews())
	}
}
