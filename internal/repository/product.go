package repository

import (
	"github.com/deppfellow/product-catalog/internal/model"
	"gorm.io/gorm"
)

// ProductRepository is the gateway for model.Product, keyed by its int64 id.
type ProductRepository = Repository[model.Product, int64]

// NewProductRepository returns the GORM-backed product gateway.
func NewProductRepository(db *gorm.DB) *GormRepository[model.Product, int64] {
	return NewGormRepository[model.Product, int64](db)
}
