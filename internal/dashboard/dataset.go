package dashboard

import (
	"context"
	"time"

	"loyalty-order-services/internal/orders"
)

// DateField selects which timestamp a Scope bounds. Most panels filter on
// ingestion time; the weekly breakdown filters on the business date.
type DateField int

const (
	ByCreatedAt DateField = iota
	ByOrderDate
)

// Scope is the per-query predicate handed to the dataset: a half-open time
// window [From, Until) on the chosen date field plus an optional status set.
// Zero times mean unbounded; an empty status set means any status. Statuses
// are canonical; the dataset maps them to each stream's native spelling.
type Scope struct {
	From      time.Time
	Until     time.Time
	DateField DateField
	Statuses  []orders.Status
}

func (s Scope) withStatuses(statuses ...orders.Status) Scope {
	s.Statuses = statuses
	return s
}

// clamp intersects the scope's window with [from, until). Used by the aging
// buckets so that bucket bounds compose with the request's date range
// instead of replacing it.
func (s Scope) clamp(from, until time.Time) Scope {
	if !from.IsZero() && (s.From.IsZero() || from.After(s.From)) {
		s.From = from
	}
	if !until.IsZero() && (s.Until.IsZero() || until.Before(s.Until)) {
		s.Until = until
	}
	return s
}

// GroupKey names the dimension a grouped aggregation rolls up on.
type GroupKey int

const (
	GroupByBank GroupKey = iota
	GroupByProduct
	GroupByOrderDate
)

// StatusGroup is one row of a grouped aggregation: a group key (bank name,
// product name, date string or courier name), a status within the group and
// the row count. Order statuses come back canonical; shipment groups carry
// the shipment status vocabulary.
type StatusGroup struct {
	Key    string
	Status string
	Count  int64
}

// OverviewCounts backs the simple stats endpoint: headline counts over the
// auxiliary collections.
type OverviewCounts struct {
	Products       int64
	Vendors        int64
	NewVendors     int64
	ActiveVendors  int64
	PurchaseOrders int64
}

// Dataset is the read-only query capability the engine consumes. Every
// implementation excludes soft-deleted rows from every result.
type Dataset interface {
	CountOrders(ctx context.Context, stream orders.Stream, scope Scope) (int64, error)
	SumOrderValue(ctx context.Context, stream orders.Stream, scope Scope) (float64, error)
	GroupOrders(ctx context.Context, stream orders.Stream, scope Scope, key GroupKey) ([]StatusGroup, error)
	GroupShipmentsByCourier(ctx context.Context, scope Scope) ([]StatusGroup, error)
	OverviewCounts(ctx context.Context, vendorsSince time.Time) (OverviewCounts, error)
}
