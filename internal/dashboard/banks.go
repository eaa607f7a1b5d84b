package dashboard

import (
	"context"
	"sort"

	"loyalty-order-services/internal/orders"
)

// BankPerformance is the per-bank rollup across both order streams. Banks
// with no matching orders in the current filter are omitted.
type BankPerformance struct {
	BankName            string `json:"bankName"`
	Orders              int64  `json:"orders"`
	ConfirmedPercentage int    `json:"confirmedPercentage"`
	CancelRate          int    `json:"cancelRate"`
	AvgDelivery         string `json:"avgDelivery"`
}

func (s *Service) bankPerformance(ctx context.Context, f Filters) ([]BankPerformance, error) {
	rows, err := s.groupBoth(ctx, f, f.baseScope(), GroupByBank)
	if err != nil {
		return nil, err
	}

	confirmedSet := make(map[string]bool, len(confirmedOrLater))
	for _, st := range confirmedOrLater {
		confirmedSet[string(st)] = true
	}

	type tally struct {
		total     int64
		confirmed int64
		cancelled int64
	}
	byBank := make(map[string]*tally)
	for _, row := range rows {
		entry := byBank[row.Key]
		if entry == nil {
			entry = &tally{}
			byBank[row.Key] = entry
		}
		entry.total += row.Count
		if confirmedSet[row.Status] {
			entry.confirmed += row.Count
		}
		if row.Status == string(orders.StatusCancelled) {
			entry.cancelled += row.Count
		}
	}

	out := make([]BankPerformance, 0, len(byBank))
	for name, entry := range byBank {
		if entry.total == 0 {
			continue
		}
		out = append(out, BankPerformance{
			BankName:            name,
			Orders:              entry.total,
			ConfirmedPercentage: percentOf(entry.confirmed, entry.total),
			CancelRate:          percentOf(entry.cancelled, entry.total),
			AvgDelivery:         metricNotAvailable,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].BankName < out[j].BankName
	})
	return out, nil
}
