package service

import (
	"context"
	"errors"

	"github.com/deppfellow/product-catalog/internal/lib/job"
	"github.com/deppfellow/product-catalog/internal/model"
	"github.com/deppfellow/product-catalog/internal/repository"
	"github.com/rs/zerolog"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductService orchestrates lookups, DTO copies and saves for products.
type ProductService struct {
	repo   repository.ProductRepository
	events EventPublisher
	logger *zerolog.Logger
}

func NewProductService(repo repository.ProductRepository, events EventPublisher, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// List returns every product ordered by id. The slice is empty, not nil, when there are none.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create persists a new product built from dto. The store assigns its id.
func (s *ProductService) Create(ctx context.Context, dto model.ProductDTO) (*model.Product, error) {
	product := dto.NewProduct()

	saved, err := s.repo.Save(ctx, &product)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, job.TaskProductCreated, saved)
	return saved, nil
}

// Update copies the fields present in dto onto the stored product and saves it.
// Fields absent from dto keep their stored values; the id never changes.
func (s *ProductService) Update(ctx context.Context, id int64, dto model.ProductDTO) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(product)

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, job.TaskProductUpdated, saved)
	return saved, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product); err != nil {
		return err
	}

	s.publish(ctx, job.TaskProductDeleted, product)
	return nil
}

// publish is best effort: the write already succeeded, so a failure is only logged.
func (s *ProductService) publish(ctx context.Context, event job.ProductEvent, product *model.Product) {
	if err := s.events.PublishProductEvent(ctx, event, product); err != nil {
		loggerFrom(ctx, s.logger).Warn().
			Err(err).
			Str("event", string(event)).
			Int64("product_id", product.ID).
			Msg("failed to publish product event")
	}
}
