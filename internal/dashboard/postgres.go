package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"loyalty-order-services/internal/orders"
	"loyalty-order-services/internal/utils"
)

// PostgresDataset implements Dataset over the bank_orders / bip_orders /
// shipments / banks tables. Canonical statuses are translated to each
// stream's native spelling on the way in and normalized on the way out, so
// calculators never see the historical split.
type PostgresDataset struct {
	db *pgxpool.Pool
}

func NewPostgresDataset(db *pgxpool.Pool) *PostgresDataset {
	return &PostgresDataset{db: db}
}

func orderTable(stream orders.Stream) string {
	if stream == orders.StreamBip {
		return "bip_orders"
	}
	return "bank_orders"
}

func valueColumn(stream orders.Stream) string {
	if stream == orders.StreamBip {
		return "amount"
	}
	return "redeemed_points"
}

// orderPredicate renders a Scope into a WHERE clause for the given stream.
// Soft-deleted rows are always excluded; the time window is half-open.
func orderPredicate(stream orders.Stream, scope Scope, alias string) (string, []any) {
	clauses := []string{alias + "is_deleted = false"}
	var args []any

	col := alias + "created_at"
	if scope.DateField == ByOrderDate {
		col = alias + "order_date"
	}
	if !scope.From.IsZero() {
		args = append(args, scope.From)
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", col, len(args)))
	}
	if !scope.Until.IsZero() {
		args = append(args, scope.Until)
		clauses = append(clauses, fmt.Sprintf("%s < $%d", col, len(args)))
	}
	if len(scope.Statuses) > 0 {
		args = append(args, orders.NativeStatuses(stream, scope.Statuses))
		clauses = append(clauses, fmt.Sprintf("%sstatus = any($%d)", alias, len(args)))
	}
	return " where " + strings.Join(clauses, " and "), args
}

func (p *PostgresDataset) CountOrders(ctx context.Context, stream orders.Stream, scope Scope) (int64, error) {
	where, args := orderPredicate(stream, scope, "")
	var n int64
	err := p.db.QueryRow(ctx, "select count(*) from "+orderTable(stream)+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", orderTable(stream), err)
	}
	return n, nil
}

func (p *PostgresDataset) SumOrderValue(ctx context.Context, stream orders.Stream, scope Scope) (float64, error) {
	where, args := orderPredicate(stream, scope, "")
	query := "select coalesce(sum(" + valueColumn(stream) + "), 0) from " + orderTable(stream) + where

	var total pgtype.Numeric
	if err := p.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum %s: %w", orderTable(stream), err)
	}
	return utils.NumericToFloat64(total), nil
}

func (p *PostgresDataset) GroupOrders(ctx context.Context, stream orders.Stream, scope Scope, key GroupKey) ([]StatusGroup, error) {
	where, args := orderPredicate(stream, scope, "o.")
	table := orderTable(stream)

	var query string
	switch key {
	case GroupByBank:
		query = `
			select b.bank_name, o.status, count(*)
			from ` + table + ` o
			join banks b on b.id = o.bank_id and b.is_deleted = false` +
			where + `
			group by b.bank_name, o.status`
	case GroupByProduct:
		query = `
			select o.product, o.status, count(*)
			from ` + table + ` o` +
			where + `
			group by o.product, o.status`
	case GroupByOrderDate:
		query = `
			select to_char(o.order_date, 'YYYY-MM-DD'), o.status, count(*)
			from ` + table + ` o` +
			where + `
			group by 1, o.status
			order by 1`
	default:
		return nil, fmt.Errorf("unknown group key %d", key)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", table, err)
	}
	defer rows.Close()

	var out []StatusGroup
	for rows.Next() {
		var (
			groupKey string
			status   string
			count    int64
		)
		if err := rows.Scan(&groupKey, &status, &count); err != nil {
			return nil, err
		}
		out = append(out, StatusGroup{
			Key:    groupKey,
			Status: string(orders.NormalizeStatus(status)),
			Count:  count,
		})
	}
	return out, rows.Err()
}

func (p *PostgresDataset) GroupShipmentsByCourier(ctx context.Context, scope Scope) ([]StatusGroup, error) {
	clauses := []string{"s.is_deleted = false"}
	var args []any
	if !scope.From.IsZero() {
		args = append(args, scope.From)
		clauses = append(clauses, fmt.Sprintf("s.created_at >= $%d", len(args)))
	}
	if !scope.Until.IsZero() {
		args = append(args, scope.Until)
		clauses = append(clauses, fmt.Sprintf("s.created_at < $%d", len(args)))
	}

	rows, err := p.db.Query(ctx, `
		select coalesce(c.courier_name, 'unknown'), s.status, count(*)
		from shipments s
		left join couriers c on c.id = s.courier_id
		where `+strings.Join(clauses, " and ")+`
		group by 1, s.status`, args...)
	if err != nil {
		return nil, fmt.Errorf("group shipments: %w", err)
	}
	defer rows.Close()

	var out []StatusGroup
	for rows.Next() {
		var group StatusGroup
		if err := rows.Scan(&group.Key, &group.Status, &group.Count); err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

func (p *PostgresDataset) OverviewCounts(ctx context.Context, vendorsSince time.Time) (OverviewCounts, error) {
	var counts OverviewCounts
	err := p.db.QueryRow(ctx, `
		select
			(select count(*) from products where is_deleted = false),
			(select count(*) from vendors where is_deleted = false),
			(select count(*) from vendors where is_deleted = false and created_at >= $1),
			(select count(*) from vendors where is_deleted = false and status = 'active'),
			(select count(*) from purchase_orders where is_deleted = false)
	`, vendorsSince).Scan(
		&counts.Products,
		&counts.Vendors,
		&counts.NewVendors,
		&counts.ActiveVendors,
		&counts.PurchaseOrders,
	)
	if err != nil {
		return OverviewCounts{}, fmt.Errorf("overview counts: %w", err)
	}
	return counts, nil
}
