// Package repository handles all interactions with the database.
//
// It defines the generic Repository gateway and its GORM implementation,
// keeping persistence details away from the service layer.
package repository

import "context"

// Repository is the data-access contract for entities of type T keyed by K.
//
// It owns no business logic; every call is a single pass-through to the store.
type Repository[T any, K comparable] interface {
	// FindAll returns every stored record ordered by primary key.
	// The result is never nil.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID returns the record with the given key. found is false, with a
	// nil error, when no such record exists.
	FindByID(ctx context.Context, id K) (entity T, found bool, err error)

	// Save inserts the entity when its key is unset and updates it otherwise.
	// Store-assigned fields, such as a generated key, are written back into
	// entity, which is returned.
	Save(ctx context.Context, entity *T) (*T, error)

	// Delete removes the record matching the entity's key.
	Delete(ctx context.Context, entity *T) error
}
