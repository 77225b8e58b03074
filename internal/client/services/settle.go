package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// settleAll runs fn for every item with at most limit in flight and waits
// for all of them. Outcome i belongs to item i. A failing or panicking item
// never affects the others.
func settleAll[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, item T) models.OperationOutcome) []models.OperationOutcome {
	outcomes := make([]models.OperationOutcome, len(items))
	if len(items) == 0 {
		return outcomes
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			outcomes[i] = safeOutcome(func() models.OperationOutcome { return fn(ctx, item) })
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func safeOutcome(fn func() models.OperationOutcome) (out models.OperationOutcome) {
	defer func() {
		if p := recover(); p != nil {
			out = models.OperationOutcome{Success: false, Error: fmt.Sprintf("panic: %v", p)}
		}
	}()
	return fn()
}

// safeCall runs fn and turns a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}
