package dashboard

import (
	"context"
	"sort"
)

// Shipment status vocabulary (owned by the shipments collection, distinct
// from the order vocabulary).
const (
	ShipmentBooked         = "booked"
	ShipmentInTransit      = "in_transit"
	ShipmentOutForDelivery = "out_for_delivery"
	ShipmentDelivered      = "delivered"
)

// CourierDispatch is the per-courier shipment rollup. Shipments with no
// resolvable courier land under the "unknown" key.
type CourierDispatch struct {
	CourierName string `json:"courierName"`
	Pending     int64  `json:"pending"`
	Dispatched  int64  `json:"dispatched"`
	AvgDispatch string `json:"avgDispatch"`
}

func (s *Service) dispatchTeam(ctx context.Context, f Filters) ([]CourierDispatch, error) {
	scope := Scope{DateField: ByCreatedAt}
	if f.Range != nil {
		scope.From = f.Range.From
		scope.Until = f.Range.Until
	}

	rows, err := s.data.GroupShipmentsByCourier(ctx, scope)
	if err != nil {
		return nil, err
	}

	byCourier := make(map[string]*CourierDispatch)
	for _, row := range rows {
		entry := byCourier[row.Key]
		if entry == nil {
			entry = &CourierDispatch{CourierName: row.Key, AvgDispatch: metricNotAvailable}
			byCourier[row.Key] = entry
		}
		switch row.Status {
		case ShipmentBooked:
			entry.Pending += row.Count
		case ShipmentInTransit, ShipmentOutForDelivery, ShipmentDelivered:
			entry.Dispatched += row.Count
		}
	}

	out := make([]CourierDispatch, 0, len(byCourier))
	for _, entry := range byCourier {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CourierName < out[j].CourierName
	})
	return out, nil
}
