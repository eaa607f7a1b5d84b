package dashboard

import (
	"context"
	"testing"
	"time"

	"loyalty-order-services/internal/orders"
)

func bankOrderFor(bank string, status orders.Status, createdAt time.Time) memOrder {
	return memOrder{
		stream:    orders.StreamBank,
		status:    status,
		createdAt: createdAt,
		orderDate: createdAt,
		bank:      bank,
		product:   "Phone",
	}
}

func TestBankPerformanceRates(t *testing.T) {
	at := testNow.Add(-24 * time.Hour)
	data := &memDataset{orders: []memOrder{
		bankOrderFor("HBL", orders.StatusConfirmed, at),
		bankOrderFor("HBL", orders.StatusProcessing, at),
		bankOrderFor("HBL", orders.StatusDispatched, at),
		bankOrderFor("HBL", orders.StatusDelivered, at),
		bankOrderFor("HBL", orders.StatusCancelled, at),
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	perf, err := s.bankPerformance(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(perf) != 1 {
		t.Fatalf("expected one bank, got %d", len(perf))
	}
	hbl := perf[0]
	if hbl.Orders != 5 {
		t.Fatalf("orders = %d", hbl.Orders)
	}
	if hbl.ConfirmedPercentage != 80 {
		t.Fatalf("confirmedPercentage = %d", hbl.ConfirmedPercentage)
	}
	if hbl.CancelRate != 20 {
		t.Fatalf("cancelRate = %d", hbl.CancelRate)
	}
	if hbl.AvgDelivery != metricNotAvailable {
		t.Fatalf("avgDelivery = %q", hbl.AvgDelivery)
	}
}

func TestBankPerformanceMergesStreams(t *testing.T) {
	at := testNow.Add(-24 * time.Hour)
	data := &memDataset{orders: []memOrder{
		bankOrderFor("Alfalah", orders.StatusConfirmed, at),
		{stream: orders.StreamBip, status: orders.StatusDelivered, createdAt: at, orderDate: at, bank: "Alfalah"},
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	perf, err := s.bankPerformance(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perf) != 1 || perf[0].Orders != 2 {
		t.Fatalf("expected both streams to merge, got %+v", perf)
	}
	if perf[0].ConfirmedPercentage != 100 {
		t.Fatalf("confirmedPercentage = %d", perf[0].ConfirmedPercentage)
	}
}

func TestBankPerformanceOmitsInactiveBanks(t *testing.T) {
	inRange := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	data := &memDataset{orders: []memOrder{
		bankOrderFor("HBL", orders.StatusConfirmed, inRange),
		bankOrderFor("Meezan", orders.StatusConfirmed, outOfRange),
	}}
	s := newTestService(data)

	f, err := BuildFilters(StatsQuery{StartDate: "2026-03-01", EndDate: "2026-03-14"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perf, err := s.bankPerformance(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perf) != 1 || perf[0].BankName != "HBL" {
		t.Fatalf("expected only banks active in period, got %+v", perf)
	}
}
