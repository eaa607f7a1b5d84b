package dashboard

import (
	"context"
	"testing"
	"time"
)

func TestDispatchTeamRollup(t *testing.T) {
	at := testNow.Add(-24 * time.Hour)
	data := &memDataset{shipments: []memShipment{
		{courier: "TCS", status: ShipmentBooked, createdAt: at},
		{courier: "TCS", status: ShipmentInTransit, createdAt: at},
		{courier: "TCS", status: ShipmentDelivered, createdAt: at},
		{courier: "Leopards", status: ShipmentOutForDelivery, createdAt: at},
		{courier: "", status: ShipmentBooked, createdAt: at},
		{courier: "TCS", status: ShipmentBooked, createdAt: at, deleted: true},
	}}
	s := newTestService(data)

	f, _ := BuildFilters(StatsQuery{}, time.UTC)
	team, err := s.dispatchTeam(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(team) != 3 {
		t.Fatalf("expected 3 couriers, got %d: %+v", len(team), team)
	}
	// Sorted by courier name.
	if team[0].CourierName != "Leopards" || team[1].CourierName != "TCS" || team[2].CourierName != "unknown" {
		t.Fatalf("courier order wrong: %+v", team)
	}
	tcs := team[1]
	if tcs.Pending != 1 || tcs.Dispatched != 2 {
		t.Fatalf("tcs rollup = %+v", tcs)
	}
	if team[2].Pending != 1 {
		t.Fatalf("unknown courier rollup = %+v", team[2])
	}
	for _, c := range team {
		if c.AvgDispatch != metricNotAvailable {
			t.Fatalf("avgDispatch must be the not-available marker, got %q", c.AvgDispatch)
		}
	}
}

func TestDispatchTeamDateRange(t *testing.T) {
	data := &memDataset{shipments: []memShipment{
		{courier: "TCS", status: ShipmentBooked, createdAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
		{courier: "TCS", status: ShipmentBooked, createdAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)},
	}}
	s := newTestService(data)

	f, err := BuildFilters(StatsQuery{StartDate: "2026-03-01", EndDate: "2026-03-14"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	team, err := s.dispatchTeam(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team) != 1 || team[0].Pending != 1 {
		t.Fatalf("expected only the in-range shipment, got %+v", team)
	}
}
