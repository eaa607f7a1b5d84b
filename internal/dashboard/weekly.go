package dashboard

import (
	"context"
	"sort"
	"time"

	"loyalty-order-services/internal/orders"
)

// WeeklyRow is one day of the trend panel. Days with no activity in either
// stream are omitted rather than zero-filled; callers render the gaps.
type WeeklyRow struct {
	Date       string `json:"date"`
	Total      int64  `json:"total"`
	Confirmed  int64  `json:"confirmed"`
	Processing int64  `json:"processing"`
	Dispatched int64  `json:"dispatched"`
	Cancelled  int64  `json:"cancelled"`
}

// weeklyBreakdown groups orders by business date (orderDate, not createdAt).
// With a fully bounded request range it covers that range; otherwise it
// defaults to the trailing 7 calendar days ending today.
func (s *Service) weeklyBreakdown(ctx context.Context, f Filters, now time.Time) ([]WeeklyRow, error) {
	scope := Scope{DateField: ByOrderDate}
	if f.bounded() {
		scope.From = f.Range.From
		scope.Until = f.Range.Until
	} else {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		scope.From = dayStart.AddDate(0, 0, -6)
		scope.Until = dayStart.AddDate(0, 0, 1)
	}

	rows, err := s.groupBoth(ctx, f, scope, GroupByOrderDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*WeeklyRow)
	for _, row := range rows {
		entry := byDate[row.Key]
		if entry == nil {
			entry = &WeeklyRow{Date: row.Key}
			byDate[row.Key] = entry
		}
		entry.Total += row.Count
		switch row.Status {
		case string(orders.StatusConfirmed):
			entry.Confirmed += row.Count
		case string(orders.StatusProcessing):
			entry.Processing += row.Count
		case string(orders.StatusDispatched):
			entry.Dispatched += row.Count
		case string(orders.StatusCancelled):
			entry.Cancelled += row.Count
		}
	}

	out := make([]WeeklyRow, 0, len(byDate))
	for _, entry := range byDate {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}
