// Package handler is the first layer after the router.
//
// It binds requests, validates them through the validation package,
// calls the service layer and turns the outcome into an HTTP response.
package handler

import (
	"github.com/deppfellow/product-catalog/internal/server"
	"github.com/deppfellow/product-catalog/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Product *ProductHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Product: NewProductHandler(s, services.Product),
	}
}
