package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/myshopee/backend/internal/auth"
	"github.com/myshopee/backend/internal/orders"
)

func registerOrderRoutes(r *gin.RouterGroup, store *orders.Store) {
	r.GET("/orders", func(c *gin.Context) {
		list, err := store.ListByUser(c.Request.Context(), auth.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_fetch_failed", "detail": err.Error()})
			return
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].OrderDate > list[j].OrderDate
		})
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	// The tracker view renders whatever statusTimestamps currently holds.
	r.GET("/orders/:orderId", func(c *gin.Context) {
		o, err := store.Get(c.Request.Context(), auth.UserID(c), c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_fetch_failed", "detail": err.Error()})
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, o)
	})
}
