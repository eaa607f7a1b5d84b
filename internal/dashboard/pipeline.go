package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// Cumulative stage membership: each set is a subset of the previous, so
// stage counts are non-increasing along the funnel.
var (
	confirmedOrLater = []orders.Status{
		orders.StatusConfirmed,
		orders.StatusProcessing,
		orders.StatusDispatched,
		orders.StatusShipped,
		orders.StatusDelivered,
	}
	purchasedOrLater = []orders.Status{
		orders.StatusProcessing,
		orders.StatusDispatched,
		orders.StatusShipped,
		orders.StatusDelivered,
	}
	dispatchedOrLater = []orders.Status{
		orders.StatusDispatched,
		orders.StatusShipped,
		orders.StatusDelivered,
	}
)

type PipelineStage struct {
	Count      int64 `json:"count"`
	Percentage int   `json:"percentage"`
}

type Pipeline struct {
	Imported   PipelineStage `json:"imported"`
	Confirmed  PipelineStage `json:"confirmed"`
	Purchased  PipelineStage `json:"purchased"`
	Dispatched PipelineStage `json:"dispatched"`
	Delivered  PipelineStage `json:"delivered"`
}

// pipeline builds the five-stage funnel. Percentages are rounded per stage
// independently, so adjacent stages may round to equal values.
func (s *Service) pipeline(ctx context.Context, f Filters) (Pipeline, error) {
	base := f.baseScope()

	var total, confirmed, purchased, dispatched, delivered int64
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base)
		total = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(confirmedOrLater...))
		confirmed = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(purchasedOrLater...))
		purchased = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(dispatchedOrLater...))
		dispatched = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(orders.StatusDelivered))
		delivered = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Pipeline{}, err
	}

	return Pipeline{
		Imported:   PipelineStage{Count: total, Percentage: 100},
		Confirmed:  PipelineStage{Count: confirmed, Percentage: percentOf(confirmed, total)},
		Purchased:  PipelineStage{Count: purchased, Percentage: percentOf(purchased, total)},
		Dispatched: PipelineStage{Count: dispatched, Percentage: percentOf(dispatched, total)},
		Delivered:  PipelineStage{Count: delivered, Percentage: percentOf(delivered, total)},
	}, nil
}
