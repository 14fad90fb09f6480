package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/myshopee/backend/internal/addresses"
	"github.com/myshopee/backend/internal/auth"
	"github.com/myshopee/backend/internal/validation"
)

func registerAddressRoutes(r *gin.RouterGroup, store *addresses.Store, v *validatorv10.Validate) {
	r.GET("/address", func(c *gin.Context) {
		addr, err := store.Get(c.Request.Context(), auth.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address_fetch_failed", "detail": err.Error()})
			return
		}
		if addr == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no_address"})
			return
		}
		c.JSON(http.StatusOK, addr)
	})

	r.PUT("/address", func(c *gin.Context) {
		var req validation.AddressRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		addr := addresses.Address{
			UserID:   auth.UserID(c),
			DoorNo:   req.DoorNo,
			Street:   req.Street,
			City:     req.City,
			District: req.District,
			State:    req.State,
			Pincode:  req.Pincode,
		}
		if err := store.Put(c.Request.Context(), addr); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address_save_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, addr)
	})

	r.DELETE("/address", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), auth.UserID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address_delete_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
