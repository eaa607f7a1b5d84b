package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"loyalty-order-services/internal/dashboard"
	"loyalty-order-services/internal/orders"
)

type staticDataset struct{}

func (staticDataset) CountOrders(context.Context, orders.Stream, dashboard.Scope) (int64, error) {
	return 0, nil
}

func (staticDataset) SumOrderValue(context.Context, orders.Stream, dashboard.Scope) (float64, error) {
	return 0, nil
}

func (staticDataset) GroupOrders(context.Context, orders.Stream, dashboard.Scope, dashboard.GroupKey) ([]dashboard.StatusGroup, error) {
	return nil, nil
}

func (staticDataset) GroupShipmentsByCourier(context.Context, dashboard.Scope) ([]dashboard.StatusGroup, error) {
	return nil, nil
}

func (staticDataset) OverviewCounts(context.Context, time.Time) (dashboard.OverviewCounts, error) {
	return dashboard.OverviewCounts{}, nil
}

func newTestHandler() *Handler {
	return &Handler{
		Logger:    zap.NewNop(),
		Dashboard: dashboard.NewService(staticDataset{}, time.UTC),
	}
}

func TestGetComprehensiveStatsQueryValidation(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "no params", query: "", wantStatus: http.StatusOK},
		{name: "valid range", query: "?startDate=2026-01-01&endDate=2026-01-31", wantStatus: http.StatusOK},
		{name: "valid selector", query: "?orderType=bip_orders", wantStatus: http.StatusOK},
		{name: "bad start date", query: "?startDate=01-01-2026", wantStatus: http.StatusBadRequest},
		{name: "bad end date", query: "?endDate=tomorrow", wantStatus: http.StatusBadRequest},
		{name: "bad selector", query: "?orderType=everything", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard/comprehensive-stats"+tc.query, nil)
			rec := httptest.NewRecorder()

			h.GetComprehensiveStats(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if tc.wantStatus == http.StatusOK {
				if body["success"] != true {
					t.Fatalf("expected success envelope, got %v", body)
				}
			} else if body["error"] != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", body)
			}
		})
	}
}

func TestGetComprehensiveStatsEnvelope(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/comprehensive-stats", nil)
	rec := httptest.NewRecorder()

	h.GetComprehensiveStats(rec, req)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Pipeline struct {
				Imported struct {
					Percentage int `json:"percentage"`
				} `json:"imported"`
			} `json:"pipeline"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success envelope")
	}
	if body.Data.Pipeline.Imported.Percentage != 100 {
		t.Fatalf("imported percentage = %d", body.Data.Pipeline.Imported.Percentage)
	}
}
