package dashboard

import (
	"context"
	"testing"
	"time"

	"loyalty-order-services/internal/orders"
)

func datedOrder(stream orders.Stream, status orders.Status, orderDate time.Time) memOrder {
	return memOrder{
		stream:    stream,
		status:    status,
		createdAt: orderDate.Add(-72 * time.Hour), // ingestion well before the business date
		orderDate: orderDate,
	}
}

func TestWeeklyBreakdownDefaultWindow(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	data := &memDataset{orders: []memOrder{
		datedOrder(orders.StreamBank, orders.StatusConfirmed, day(0)),
		datedOrder(orders.StreamBank, orders.StatusProcessing, day(0)),
		datedOrder(orders.StreamBip, orders.StatusConfirmed, day(-2)),
		datedOrder(orders.StreamBip, orders.StatusCancelled, day(-2)),
		datedOrder(orders.StreamBank, orders.StatusDispatched, day(-6)),
		// Older than the trailing 7-day window.
		datedOrder(orders.StreamBank, orders.StatusConfirmed, day(-10)),
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	rows, err := s.weeklyBreakdown(context.Background(), f, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sparse: only dates with activity appear, ascending.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Date != "2026-03-09" || rows[1].Date != "2026-03-13" || rows[2].Date != "2026-03-15" {
		t.Fatalf("rows out of order: %+v", rows)
	}
	if rows[0].Dispatched != 1 || rows[0].Total != 1 {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Confirmed != 1 || rows[1].Cancelled != 1 || rows[1].Total != 2 {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
	if rows[2].Confirmed != 1 || rows[2].Processing != 1 || rows[2].Total != 2 {
		t.Fatalf("rows[2] = %+v", rows[2])
	}
}

func TestWeeklyBreakdownUsesExplicitRange(t *testing.T) {
	data := &memDataset{orders: []memOrder{
		datedOrder(orders.StreamBank, orders.StatusConfirmed, time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)),
		datedOrder(orders.StreamBank, orders.StatusConfirmed, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
	}}
	s := newTestService(data)

	f, err := BuildFilters(StatsQuery{StartDate: "2026-02-01", EndDate: "2026-02-28"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := s.weeklyBreakdown(context.Background(), f, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2026-02-10" {
		t.Fatalf("expected only the February order, got %+v", rows)
	}
}

func TestWeeklyBreakdownFiltersOnOrderDate(t *testing.T) {
	// createdAt is inside the window but orderDate is not; the weekly
	// panel goes by business date.
	data := &memDataset{orders: []memOrder{{
		stream:    orders.StreamBank,
		status:    orders.StatusConfirmed,
		createdAt: testNow.Add(-2 * time.Hour),
		orderDate: testNow.AddDate(0, 0, -20),
	}}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	rows, err := s.weeklyBreakdown(context.Background(), f, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}
