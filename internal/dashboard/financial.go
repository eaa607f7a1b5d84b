package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// FinancialOverview sums order value across both streams: redeemed points
// for bank orders, amount for BIP orders.
type FinancialOverview struct {
	TotalOrdersValue     float64 `json:"totalOrdersValue"`
	PendingPurchaseValue float64 `json:"pendingPurchaseValue"`
	PendingDispatchValue float64 `json:"pendingDispatchValue"`
	DeliveredValue       float64 `json:"deliveredValue"`
}

func (s *Service) financialOverview(ctx context.Context, f Filters) (FinancialOverview, error) {
	base := f.baseScope()

	var fin FinancialOverview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.sumBoth(ctx, f, base)
		fin.TotalOrdersValue = v
		return err
	})
	g.Go(func() error {
		v, err := s.sumBoth(ctx, f, base.withStatuses(orders.StatusConfirmed))
		fin.PendingPurchaseValue = v
		return err
	})
	g.Go(func() error {
		v, err := s.sumBoth(ctx, f, base.withStatuses(orders.StatusProcessing))
		fin.PendingDispatchValue = v
		return err
	})
	g.Go(func() error {
		v, err := s.sumBoth(ctx, f, base.withStatuses(orders.StatusDelivered))
		fin.DeliveredValue = v
		return err
	})
	if err := g.Wait(); err != nil {
		return FinancialOverview{}, err
	}
	return fin, nil
}
