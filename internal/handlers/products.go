package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myshopee/backend/internal/catalog"
)

// Product routes proxy the public catalog API so the browser never talks to
// it directly (and so responses can be cached here later).
func registerProductRoutes(r *gin.Engine, client *catalog.Client) {
	r.GET("/products", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		skip, _ := strconv.Atoi(c.Query("skip"))
		list, err := client.List(c.Request.Context(), limit, skip)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/products/categories", func(c *gin.Context) {
		cats, err := client.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cats)
	})

	r.GET("/products/category/:category", func(c *gin.Context) {
		list, err := client.ByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/products/search", func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_query"})
			return
		}
		list, err := client.Search(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/products/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		p, err := client.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
