package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"loyalty-order-services/pkg/response"
)

type shipmentRow struct {
	ID             int64     `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	CourierName    string    `json:"courierName"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (h *Handler) GetShipments(w http.ResponseWriter, r *http.Request) {
	page := readQueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := readQueryInt(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	clauses := []string{"s.is_deleted = false"}
	var args []any
	if status := readQueryString(r, "status"); status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("s.status = $%d", len(args)))
	}
	where := " where " + strings.Join(clauses, " and ")

	var total int64
	if err := h.DB.QueryRow(r.Context(), "select count(*) from shipments s"+where, args...).Scan(&total); err != nil {
		h.Logger.Error("count shipments failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load shipments")
		return
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := h.DB.Query(r.Context(), `
		select s.id, coalesce(s.order_number, ''), coalesce(c.courier_name, 'unknown'),
			coalesce(s.tracking_number, ''), s.status, s.created_at
		from shipments s
		left join couriers c on c.id = s.courier_id`+
		where+fmt.Sprintf(`
		order by s.created_at desc
		limit $%d offset $%d`, len(args)-1, len(args)), args...)
	if err != nil {
		h.Logger.Error("list shipments failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load shipments")
		return
	}
	defer rows.Close()

	items := make([]shipmentRow, 0, limit)
	for rows.Next() {
		var row shipmentRow
		if err := rows.Scan(&row.ID, &row.OrderNumber, &row.CourierName,
			&row.TrackingNumber, &row.Status, &row.CreatedAt); err != nil {
			h.Logger.Error("scan shipment row failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load shipments")
			return
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list shipments failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load shipments")
		return
	}

	response.Success(w, map[string]any{
		"items": items,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
