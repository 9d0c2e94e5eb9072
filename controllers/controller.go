package controllers

import (
	"log"
	"net/http"
	"strconv"

	"qr-dine/models"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the HTTP response. Anything
// that is not an AppError is logged in full and normalized to a 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := models.AsAppError(err); ok {
		if appErr.Kind == models.ErrKindInternal {
			log.Println("Internal error:", appErr.Error())
		}
		c.JSON(appErr.Kind.HTTPStatus(), models.ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
			Debug: appErr.Debug,
		})
		return
	}

	log.Println("Unexpected error:", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Internal server error",
	})
}

func restaurantID(c *gin.Context) string {
	return c.GetString("restaurant_id")
}

func paginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
