package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository implements Repository on top of GORM's generic CRUD support.
type GormRepository[T any, K comparable] struct {
	db *gorm.DB
}

// NewGormRepository creates a repository for entity type T.
func NewGormRepository[T any, K comparable](db *gorm.DB) *GormRepository[T, K] {
	return &GormRepository[T, K]{db: db}
}

var byPrimaryKey = clause.OrderByColumn{
	Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
}

func (r *GormRepository[T, K]) FindAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.db.WithContext(ctx).Order(byPrimaryKey).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository[T, K]) FindByID(ctx context.Context, id K) (T, bool, error) {
	var item T
	err := r.db.WithContext(ctx).Take(&item, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		var zero T
		return zero, false, nil
	case err != nil:
		var zero T
		return zero, false, err
	}
	return item, true, nil
}

// Save relies on gorm.DB.Save: a zero key inserts, a non-zero key updates,
// and an update that matches no row falls back to an insert.
//
// The fallback insert writes the caller's key into the identity column
// without advancing its sequence, so a later generated key may collide with
// it. Callers that create records pass a zero key.
func (r *GormRepository[T, K]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *GormRepository[T, K]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}
