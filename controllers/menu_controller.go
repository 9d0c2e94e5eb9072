package controllers

import (
	"context"
	"fmt"
	"net/http"

	"qr-dine/libs"
	"qr-dine/models"
	"qr-dine/services"
	"qr-dine/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

func publicMenuCacheKey(restaurantID string) string {
	return fmt.Sprintf("public_menu_%s", restaurantID)
}

func invalidatePublicMenuCache(restaurantID string) {
	if models.RedisClient == nil {
		return
	}
	models.RedisClient.Del(context.Background(), publicMenuCacheKey(restaurantID))
}

// List godoc
// @Summary List menu items
// @Description All menu items for the authenticated restaurant
// @Tags Menu
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MenuItem
// @Router /menus [get]
func (ctrl *MenuController) List(c *gin.Context) {
	items, err := ctrl.menu.List(c.Request.Context(), restaurantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create menu item
// @Tags Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} models.ErrorResponse
// @Router /menus [post]
func (ctrl *MenuController) Create(c *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := ctrl.menu.Create(c.Request.Context(), restaurantID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	invalidatePublicMenuCache(restaurantID(c))
	c.JSON(http.StatusCreated, item)
}

// Get godoc
// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} models.ErrorResponse
// @Router /menu/{id} [get]
func (ctrl *MenuController) Get(c *gin.Context) {
	item, err := ctrl.menu.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Update menu item
// @Description Partial update; only supplied fields are persisted
// @Tags Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body models.UpdateMenuItemRequest true "Fields to update"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.ErrorResponse
// @Router /menu/{id} [put]
func (ctrl *MenuController) Update(c *gin.Context) {
	var req models.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := ctrl.menu.Update(c.Request.Context(), restaurantID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	invalidatePublicMenuCache(restaurantID(c))
	c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete menu item
// @Description Deletes the item unless it is referenced by existing orders
// @Tags Menu
// @Security BearerAuth
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /menu/{id} [delete]
func (ctrl *MenuController) Delete(c *gin.Context) {
	if err := ctrl.menu.Delete(c.Request.Context(), restaurantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	invalidatePublicMenuCache(restaurantID(c))
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Menu item deleted successfully",
	})
}

// UploadPhoto godoc
// @Summary Upload menu item photo
// @Tags Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Menu item ID"
// @Param photo formData file true "Image file"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.ErrorResponse
// @Router /menu/{id}/photo [post]
func (ctrl *MenuController) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Photo file is required"})
		return
	}

	localPath, err := utils.StageUpload(c, fileHeader, "menu")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	url, err := libs.UploadMenuPhoto(localPath)
	if err != nil {
		respondError(c, models.NewInternalError("Failed to upload photo", err))
		return
	}

	item, err := ctrl.menu.SetPhotoURL(c.Request.Context(), restaurantID(c), c.Param("id"), url)
	if err != nil {
		respondError(c, err)
		return
	}
	invalidatePublicMenuCache(restaurantID(c))
	c.JSON(http.StatusOK, item)
}
