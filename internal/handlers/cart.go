package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/myshopee/backend/internal/auth"
	"github.com/myshopee/backend/internal/cart"
	"github.com/myshopee/backend/internal/validation"
)

func registerCartRoutes(r *gin.RouterGroup, store *cart.Store, v *validatorv10.Validate) {
	r.GET("/cart", func(c *gin.Context) {
		items, err := store.List(c.Request.Context(), auth.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_fetch_failed", "detail": err.Error()})
			return
		}
		var subtotal float64
		for _, it := range items {
			subtotal += it.Price * float64(it.Quantity)
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
	})

	r.POST("/cart/items", func(c *gin.Context) {
		var req validation.AddItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		item := cart.Item{
			UserID:    auth.UserID(c),
			ProductID: req.ProductID,
			Title:     req.Title,
			Price:     req.Price,
			Thumbnail: req.Thumbnail,
		}
		if err := store.Add(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_add_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"productId": req.ProductID, "quantity": 1})
	})

	r.PUT("/cart/items/:productId", func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		var req validation.UpdateQuantityRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		err = store.SetQuantity(c.Request.Context(), auth.UserID(c), productID, req.Quantity)
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item_not_in_cart"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_update_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"productId": productID, "quantity": req.Quantity})
	})

	r.DELETE("/cart/items/:productId", func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		if err := store.Remove(c.Request.Context(), auth.UserID(c), productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_remove_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.DELETE("/cart", func(c *gin.Context) {
		if err := store.Clear(c.Request.Context(), auth.UserID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_clear_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
