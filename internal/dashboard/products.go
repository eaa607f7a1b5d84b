package dashboard

import (
	"context"
	"sort"

	"loyalty-order-services/internal/orders"
)

const topProductsLimit = 10

// ProductDelay ranks products by orders stuck before purchase. This panel is
// defined over the bank-order stream only; BIP orders do not participate.
type ProductDelay struct {
	Product         string `json:"product"`
	OrdersCount     int64  `json:"ordersCount"`
	PendingPurchase int64  `json:"pendingPurchase"`
}

func (s *Service) topProductsDelays(ctx context.Context, f Filters) ([]ProductDelay, error) {
	scope := f.baseScope().withStatuses(orders.StatusPending, orders.StatusConfirmed)
	rows, err := s.data.GroupOrders(ctx, orders.StreamBank, scope, GroupByProduct)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*ProductDelay)
	for _, row := range rows {
		entry := byProduct[row.Key]
		if entry == nil {
			entry = &ProductDelay{Product: row.Key}
			byProduct[row.Key] = entry
		}
		entry.OrdersCount += row.Count
		if row.Status == string(orders.StatusConfirmed) {
			entry.PendingPurchase += row.Count
		}
	}

	out := make([]ProductDelay, 0, len(byProduct))
	for _, entry := range byProduct {
		out = append(out, *entry)
	}
	// Ties on pendingPurchase break on total orders, then name, so the
	// ranking is stable across requests.
	sort.Slice(out, func(i, j int) bool {
		if out[i].PendingPurchase != out[j].PendingPurchase {
			return out[i].PendingPurchase > out[j].PendingPurchase
		}
		if out[i].OrdersCount != out[j].OrdersCount {
			return out[i].OrdersCount > out[j].OrdersCount
		}
		return out[i].Product < out[j].Product
	})
	if len(out) > topProductsLimit {
		out = out[:topProductsLimit]
	}
	return out, nil
}
