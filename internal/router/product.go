package router

import (
	"net/http"

	"github.com/deppfellow/product-catalog/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerProductRoutes mounts the product resource on /products.
func registerProductRoutes(r *echo.Echo, h *handler.Handlers) {
	products := r.Group("/products")

	products.GET("", handler.Handle(h.Product.List, http.StatusOK, handler.NewListProductsRequest))
	products.POST("", handler.Handle(h.Product.Create, http.StatusCreated, handler.NewCreateProductRequest))
	products.GET("/:id", handler.HandleReply(h.Product.Get, handler.NewProductIDRequest))
	products.PUT("/:id", handler.HandleReply(h.Product.Update, handler.NewUpdateProductRequest))
	products.DELETE("/:id", handler.HandleReply(h.Product.Delete, handler.NewProductIDRequest))
}
