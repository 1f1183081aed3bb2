package repository

import (
	"github.com/deppfellow/product-catalog/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Product ProductRepository
}

// NewRepositories constructs the repository container on the server's ORM handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Product: NewProductRepository(s.DB.ORM),
	}
}
