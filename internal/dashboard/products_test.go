package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loyalty-order-services/internal/orders"
)

func productOrder(product string, status orders.Status) memOrder {
	at := testNow.Add(-12 * time.Hour)
	return memOrder{
		stream:    orders.StreamBank,
		status:    status,
		createdAt: at,
		orderDate: at,
		bank:      "HBL",
		product:   product,
	}
}

func TestTopProductsDelaysRanking(t *testing.T) {
	data := &memDataset{orders: []memOrder{
		productOrder("iPhone 15", orders.StatusConfirmed),
		productOrder("iPhone 15", orders.StatusConfirmed),
		productOrder("iPhone 15", orders.StatusPending),
		productOrder("AirPods", orders.StatusConfirmed),
		productOrder("AirPods", orders.StatusPending),
		productOrder("Watch", orders.StatusPending),
		// Later statuses are outside this panel entirely.
		productOrder("Laptop", orders.StatusDelivered),
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	top, err := s.topProductsDelays(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(top) != 3 {
		t.Fatalf("expected 3 products, got %d", len(top))
	}
	if top[0].Product != "iPhone 15" || top[0].OrdersCount != 3 || top[0].PendingPurchase != 2 {
		t.Fatalf("top[0] = %+v", top[0])
	}
	if top[1].Product != "AirPods" || top[1].PendingPurchase != 1 {
		t.Fatalf("top[1] = %+v", top[1])
	}
	if top[2].Product != "Watch" || top[2].PendingPurchase != 0 {
		t.Fatalf("top[2] = %+v", top[2])
	}
}

func TestTopProductsDelaysTieBreak(t *testing.T) {
	data := &memDataset{orders: []memOrder{
		productOrder("Beta", orders.StatusConfirmed),
		productOrder("Alpha", orders.StatusConfirmed),
		// Same pendingPurchase; Beta has more total orders.
		productOrder("Beta", orders.StatusPending),
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	top, err := s.topProductsDelays(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top[0].Product != "Beta" || top[1].Product != "Alpha" {
		t.Fatalf("tie-break order wrong: %+v", top)
	}
}

func TestTopProductsDelaysLimitAndBankStreamOnly(t *testing.T) {
	var rows []memOrder
	for i := 0; i < 15; i++ {
		rows = append(rows, productOrder(fmt.Sprintf("Product-%02d", i), orders.StatusConfirmed))
	}
	at := testNow.Add(-12 * time.Hour)
	// BIP orders never reach this panel.
	rows = append(rows, memOrder{
		stream: orders.StreamBip, status: orders.StatusConfirmed,
		createdAt: at, orderDate: at, product: "BipOnly",
	})
	data := &memDataset{orders: rows}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	top, err := s.topProductsDelays(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != topProductsLimit {
		t.Fatalf("expected top %d, got %d", topProductsLimit, len(top))
	}
	for _, p := range top {
		if p.Product == "BipOnly" {
			t.Fatalf("bip order leaked into bank-only panel")
		}
	}
}
