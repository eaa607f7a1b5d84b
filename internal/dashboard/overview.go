package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"loyalty-order-services/internal/orders"
)

// Stats is the lightweight landing-page summary: headline totals with no
// filtering, always across both streams.
type Stats struct {
	BankOrders     OrderTotals         `json:"bankOrders"`
	Products       ProductTotals       `json:"products"`
	Vendors        VendorTotals        `json:"vendors"`
	PurchaseOrders PurchaseOrderTotals `json:"purchaseOrders"`
}

type OrderTotals struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
}

type ProductTotals struct {
	Total   int64 `json:"total"`
	InStock int64 `json:"inStock"`
	Active  int64 `json:"active"`
}

type VendorTotals struct {
	Total      int64 `json:"total"`
	NewVendors int64 `json:"newVendors"`
	Active     int64 `json:"active"`
}

type PurchaseOrderTotals struct {
	Total              int64 `json:"total"`
	CapacityPercentage int   `json:"capacityPercentage"`
	Active             int64 `json:"active"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	both := Filters{Streams: StreamSelector{Bank: true, Bip: true}}
	all := Scope{DateField: ByCreatedAt}

	var (
		total, completed, active int64
		counts                   OverviewCounts
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.countBoth(ctx, both, all)
		total = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, both, all.withStatuses(orders.StatusDelivered))
		completed = n
		return err
	})
	g.Go(func() error {
		n, err := s.countBoth(ctx, both, all.withStatuses(orders.StatusPending, orders.StatusProcessing))
		active = n
		return err
	})
	g.Go(func() error {
		c, err := s.data.OverviewCounts(ctx, s.now().Add(-30*24*time.Hour))
		counts = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stats{
		BankOrders: OrderTotals{Total: total, Completed: completed, Active: active},
		Products: ProductTotals{
			Total: counts.Products,
			// Stock levels are not tracked; every product counts as in stock.
			InStock: counts.Products,
			Active:  counts.Products,
		},
		Vendors: VendorTotals{
			Total:      counts.Vendors,
			NewVendors: counts.NewVendors,
			Active:     counts.ActiveVendors,
		},
		PurchaseOrders: PurchaseOrderTotals{
			Total:              counts.PurchaseOrders,
			CapacityPercentage: percentOf(counts.PurchaseOrders, counts.PurchaseOrders),
			Active:             counts.PurchaseOrders,
		},
	}, nil
}
