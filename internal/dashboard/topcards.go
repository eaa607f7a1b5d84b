package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// TopCards are the six headline counts. "Today" cards always use the local
// calendar day regardless of the requested date range; the status cards use
// the base filter.
type TopCards struct {
	TotalOrdersToday     int64 `json:"totalOrdersToday"`
	AwaitingConfirmation int64 `json:"awaitingConfirmation"`
	PendingPurchase      int64 `json:"pendingPurchase"`
	PendingDispatch      int64 `json:"pendingDispatch"`
	DeliveredToday       int64 `json:"deliveredToday"`
	CancelledOrders      int64 `json:"cancelledOrders"`
}

func (s *Service) topCards(ctx context.Context, f Filters, now time.Time) (TopCards, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := Scope{DateField: ByCreatedAt, From: dayStart, Until: dayStart.AddDate(0, 0, 1)}
	base := f.baseScope()

	var cards TopCards
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, today)
		cards.TotalOrdersToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(orders.StatusPending))
		cards.AwaitingConfirmation = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(orders.StatusConfirmed))
		cards.PendingPurchase = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(orders.StatusProcessing))
		cards.PendingDispatch = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, today.withStatuses(orders.StatusDelivered))
		cards.DeliveredToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, base.withStatuses(orders.StatusCancelled))
		cards.CancelledOrders = n
		return err
	})
	if err := g.Wait(); err != nil {
		return TopCards{}, err
	}
	return cards, nil
}
