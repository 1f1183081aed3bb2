// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives bound data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
package service

import (
	"context"

	"github.com/deppfellow/product-catalog/internal/lib/job"
	"github.com/deppfellow/product-catalog/internal/model"
	"github.com/rs/zerolog"
)

// EventPublisher announces successful writes. *job.JobService implements it.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event job.ProductEvent, product *model.Product) error
}

// nopPublisher is used when background jobs are disabled.
type nopPublisher struct{}

func (nopPublisher) PublishProductEvent(context.Context, job.ProductEvent, *model.Product) error {
	return nil
}

// loggerFrom returns the request logger carried by ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
