package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// PendingAging buckets still-pending orders by elapsed time since creation.
type PendingAging struct {
	ZeroToOneHour           int64 `json:"zeroToOneHour"`
	OneToFourHours          int64 `json:"oneToFourHours"`
	FourToTwentyFourHours   int64 `json:"fourToTwentyFourHours"`
	MoreThanTwentyFourHours int64 `json:"moreThanTwentyFourHours"`
}

// pendingAging counts pending orders in [0,1h), [1h,4h), [4h,24h) and
// [24h,inf) age buckets. All four buckets share the same "now" snapshot and
// intersect with the base date range, so together they partition the pending
// population exactly.
func (s *Service) pendingAging(ctx context.Context, f Filters, now time.Time) (PendingAging, error) {
	pending := f.baseScope().withStatuses(orders.StatusPending)
	oneHourAgo := now.Add(-1 * time.Hour)
	fourHoursAgo := now.Add(-4 * time.Hour)
	dayAgo := now.Add(-24 * time.Hour)

	var aging PendingAging
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, pending.clamp(oneHourAgo, time.Time{}))
		aging.ZeroToOneHour = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, pending.clamp(fourHoursAgo, oneHourAgo))
		aging.OneToFourHours = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, pending.clamp(dayAgo, fourHoursAgo))
		aging.FourToTwentyFourHours = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, f, pending.clamp(time.Time{}, dayAgo))
		aging.MoreThanTwentyFourHours = n
		return err
	})
	if err := g.Wait(); err != nil {
		return PendingAging{}, err
	}
	return aging, nil
}
