package dashboard

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// metricNotAvailable marks rollup columns the data model cannot back yet.
// TODO: compute real dispatch/delivery durations once shipments record a
// dispatched_at timestamp.
const metricNotAvailable = "n/a"

// Service computes the operational dashboard. It is a pure read-side
// aggregation layer: all state lives behind the Dataset.
type Service struct {
	data Dataset
	loc  *time.Location
	now  func() time.Time
}

// NewService builds the aggregation layer. loc sets the timezone for day
// boundaries; nil falls back to the server's local zone.
func NewService(data Dataset, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		data: data,
		loc:  loc,
		now:  time.Now,
	}
}

// ComprehensiveStats is the multi-panel dashboard response.
type ComprehensiveStats struct {
	TopCards          TopCards          `json:"topCards"`
	Pipeline          Pipeline          `json:"pipeline"`
	PendingAging      PendingAging      `json:"pendingAging"`
	DispatchTeam      []CourierDispatch `json:"dispatchTeam"`
	BankPerformance   []BankPerformance `json:"bankPerformance"`
	TopProductsDelays []ProductDelay    `json:"topProductsDelays"`
	FinancialOverview FinancialOverview `json:"financialOverview"`
	WeeklyBreakdown   []WeeklyRow       `json:"weeklyBreakdown"`
}

// ComprehensiveStats fans out all panel calculators concurrently against one
// immutable filter context and a single "now" snapshot, then joins. The
// first failing sub-query cancels the rest; partial dashboards are never
// returned.
func (s *Service) ComprehensiveStats(ctx context.Context, q StatsQuery) (*ComprehensiveStats, error) {
	f, err := BuildFilters(q, s.loc)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)

	var out ComprehensiveStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.topCards(ctx, f, now)
		out.TopCards = v
		return err
	})
	g.Go(func() error {
		v, err := s.pipeline(ctx, f)
		out.Pipeline = v
		return err
	})
	g.Go(func() error {
		v, err := s.pendingAging(ctx, f, now)
		out.PendingAging = v
		return err
	})
	g.Go(func() error {
		v, err := s.dispatchTeam(ctx, f)
		out.DispatchTeam = v
		return err
	})
	g.Go(func() error {
		v, err := s.bankPerformance(ctx, f)
		out.BankPerformance = v
		return err
	})
	g.Go(func() error {
		v, err := s.topProductsDelays(ctx, f)
		out.TopProductsDelays = v
		return err
	})
	g.Go(func() error {
		v, err := s.financialOverview(ctx, f)
		out.FinancialOverview = v
		return err
	})
	g.Go(func() error {
		v, err := s.weeklyBreakdown(ctx, f, now)
		out.WeeklyBreakdown = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// countBoth sums a count over the included streams. Excluded streams are not
// queried at all.
func (s *Service) countBoth(ctx context.Context, f Filters, scope Scope) (int64, error) {
	var bank, bip int64
	g, ctx := errgroup.WithContext(ctx)
	if f.Streams.Bank {
		g.Go(func() error {
			n, err := s.data.CountOrders(ctx, orders.StreamBank, scope)
			bank = n
			return err
		})
	}
	if f.Streams.Bip {
		g.Go(func() error {
			n, err := s.data.CountOrders(ctx, orders.StreamBip, scope)
			bip = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return bank + bip, nil
}

// sumBoth sums the stream-appropriate monetary field over the included
// streams: redeemed points for bank orders, amount for BIP orders.
func (s *Service) sumBoth(ctx context.Context, f Filters, scope Scope) (float64, error) {
	var bank, bip float64
	g, ctx := errgroup.WithContext(ctx)
	if f.Streams.Bank {
		g.Go(func() error {
			v, err := s.data.SumOrderValue(ctx, orders.StreamBank, scope)
			bank = v
			return err
		})
	}
	if f.Streams.Bip {
		g.Go(func() error {
			v, err := s.data.SumOrderValue(ctx, orders.StreamBip, scope)
			bip = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return bank + bip, nil
}

// groupBoth concatenates grouped rows from the included streams. Rows for
// the same (key, status) pair may appear once per stream; callers fold them.
func (s *Service) groupBoth(ctx context.Context, f Filters, scope Scope, key GroupKey) ([]StatusGroup, error) {
	var bank, bip []StatusGroup
	g, ctx := errgroup.WithContext(ctx)
	if f.Streams.Bank {
		g.Go(func() error {
			rows, err := s.data.GroupOrders(ctx, orders.StreamBank, scope, key)
			bank = rows
			return err
		})
	}
	if f.Streams.Bip {
		g.Go(func() error {
			rows, err := s.data.GroupOrders(ctx, orders.StreamBip, scope, key)
			bip = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(bank, bip...), nil
}

// percentOf is the shared integer-rounded percentage with the zero-divisor
// guard every panel relies on.
func percentOf(count, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
