package dashboard

import (
	"context"
	"sync"
	"time"

	"loyalty-order-services/internal/orders"
)

// memDataset is an in-memory Dataset used by the calculator tests. It
// mirrors the Postgres implementation's contract: soft-deleted rows are
// invisible, windows are half-open, statuses are canonical.
type memDataset struct {
	mu        sync.Mutex
	orders    []memOrder
	shipments []memShipment
	counts    OverviewCounts
	err       error
	queried   map[orders.Stream]bool
}

type memOrder struct {
	stream    orders.Stream
	status    orders.Status
	createdAt time.Time
	orderDate time.Time
	bank      string
	product   string
	value     float64
	deleted   bool
}

type memShipment struct {
	courier   string
	status    string
	createdAt time.Time
	deleted   bool
}

func (m *memDataset) touch(stream orders.Stream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queried == nil {
		m.queried = make(map[orders.Stream]bool)
	}
	m.queried[stream] = true
}

func (m *memDataset) wasQueried(stream orders.Stream) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queried[stream]
}

func (m *memDataset) matches(o memOrder, stream orders.Stream, scope Scope) bool {
	if o.stream != stream || o.deleted {
		return false
	}
	ts := o.createdAt
	if scope.DateField == ByOrderDate {
		ts = o.orderDate
	}
	if !scope.From.IsZero() && ts.Before(scope.From) {
		return false
	}
	if !scope.Until.IsZero() && !ts.Before(scope.Until) {
		return false
	}
	if len(scope.Statuses) > 0 {
		found := false
		for _, st := range scope.Statuses {
			if o.status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *memDataset) CountOrders(_ context.Context, stream orders.Stream, scope Scope) (int64, error) {
	m.touch(stream)
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, o := range m.orders {
		if m.matches(o, stream, scope) {
			n++
		}
	}
	return n, nil
}

func (m *memDataset) SumOrderValue(_ context.Context, stream orders.Stream, scope Scope) (float64, error) {
	m.touch(stream)
	if m.err != nil {
		return 0, m.err
	}
	var total float64
	for _, o := range m.orders {
		if m.matches(o, stream, scope) {
			total += o.value
		}
	}
	return total, nil
}

func (m *memDataset) GroupOrders(_ context.Context, stream orders.Stream, scope Scope, key GroupKey) ([]StatusGroup, error) {
	m.touch(stream)
	if m.err != nil {
		return nil, m.err
	}
	type groupID struct {
		key    string
		status orders.Status
	}
	tally := make(map[groupID]int64)
	for _, o := range m.orders {
		if !m.matches(o, stream, scope) {
			continue
		}
		id := groupID{status: o.status}
		switch key {
		case GroupByBank:
			if o.bank == "" {
				continue
			}
			id.key = o.bank
		case GroupByProduct:
			id.key = o.product
		case GroupByOrderDate:
			id.key = o.orderDate.Format("2006-01-02")
		}
		tally[id]++
	}
	out := make([]StatusGroup, 0, len(tally))
	for id, count := range tally {
		out = append(out, StatusGroup{Key: id.key, Status: string(id.status), Count: count})
	}
	return out, nil
}

func (m *memDataset) GroupShipmentsByCourier(_ context.Context, scope Scope) ([]StatusGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	type groupID struct {
		courier string
		status  string
	}
	tally := make(map[groupID]int64)
	for _, sh := range m.shipments {
		if sh.deleted {
			continue
		}
		if !scope.From.IsZero() && sh.createdAt.Before(scope.From) {
			continue
		}
		if !scope.Until.IsZero() && !sh.createdAt.Before(scope.Until) {
			continue
		}
		courier := sh.courier
		if courier == "" {
			courier = "unknown"
		}
		tally[groupID{courier: courier, status: sh.status}]++
	}
	out := make([]StatusGroup, 0, len(tally))
	for id, count := range tally {
		out = append(out, StatusGroup{Key: id.courier, Status: id.status, Count: count})
	}
	return out, nil
}

func (m *memDataset) OverviewCounts(_ context.Context, _ time.Time) (OverviewCounts, error) {
	if m.err != nil {
		return OverviewCounts{}, m.err
	}
	return m.counts, nil
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(data *memDataset) *Service {
	s := NewService(data, time.UTC)
	s.now = func() time.Time { return testNow }
	return s
}
