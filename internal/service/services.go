package service

import (
	"github.com/deppfellow/product-catalog/internal/repository"
	"github.com/deppfellow/product-catalog/internal/server"
)

// Services is the container handed to the handler layer.
type Services struct {
	Product *ProductService
}

// NewServices wires services on top of the repositories. Product events go to
// the job service when it runs and are dropped otherwise.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var events EventPublisher = nopPublisher{}
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		Product: NewProductService(repos.Product, events, s.Logger),
	}, nil
}
