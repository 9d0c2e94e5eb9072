package middleware

import (
	"net/http"
	"strings"

	"qr-dine/models"
	"qr-dine/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the authenticated restaurant owner from the bearer
// token and stores the claims on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Authentication required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("restaurant_id", claims.RestaurantID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
