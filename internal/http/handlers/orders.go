package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"loyalty-order-services/internal/orders"
	"loyalty-order-services/internal/utils"
	"loyalty-order-services/pkg/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type orderRow struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Product      string    `json:"product"`
	BankName     string    `json:"bankName"`
	Status       string    `json:"status"`
	Value        float64   `json:"value"`
	OrderDate    string    `json:"orderDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetBankOrders lists point-redemption orders, newest first.
func (h *Handler) GetBankOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, orders.StreamBank)
}

// GetBipOrders lists direct-purchase orders, newest first.
func (h *Handler) GetBipOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, orders.StreamBip)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, stream orders.Stream) {
	page := readQueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := readQueryInt(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	table := "bank_orders"
	valueCol := "redeemed_points"
	if stream == orders.StreamBip {
		table = "bip_orders"
		valueCol = "amount"
	}

	clauses := []string{"o.is_deleted = false"}
	var args []any

	if raw := readQueryString(r, "status"); raw != "" {
		status := orders.NormalizeStatus(raw)
		if !status.Valid() {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("unknown status %q", raw))
			return
		}
		args = append(args, orders.NativeStatus(stream, status))
		clauses = append(clauses, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if search := readQueryString(r, "search"); search != "" {
		args = append(args, "%"+search+"%")
		clauses = append(clauses, fmt.Sprintf("(o.order_number ilike $%d or o.customer_name ilike $%d)", len(args), len(args)))
	}
	where := " where " + strings.Join(clauses, " and ")

	var total int64
	countQuery := "select count(*) from " + table + " o" + where
	if err := h.DB.QueryRow(r.Context(), countQuery, args...).Scan(&total); err != nil {
		h.Logger.Error("count orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}

	args = append(args, limit, (page-1)*limit)
	query := `
		select o.id, o.order_number, o.customer_name, o.product,
			coalesce(b.bank_name, ''), o.status, o.` + valueCol + `,
			to_char(o.order_date, 'YYYY-MM-DD'), o.created_at
		from ` + table + ` o
		left join banks b on b.id = o.bank_id` +
		where + fmt.Sprintf(`
		order by o.created_at desc
		limit $%d offset $%d`, len(args)-1, len(args))

	rows, err := h.DB.Query(r.Context(), query, args...)
	if err != nil {
		h.Logger.Error("list orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}
	defer rows.Close()

	items := make([]orderRow, 0, limit)
	for rows.Next() {
		var (
			row   orderRow
			value pgtype.Numeric
		)
		if err := rows.Scan(&row.ID, &row.OrderNumber, &row.CustomerName, &row.Product,
			&row.BankName, &row.Status, &value, &row.OrderDate, &row.CreatedAt); err != nil {
			h.Logger.Error("scan order row failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
			return
		}
		row.Status = string(orders.NormalizeStatus(row.Status))
		row.Value = utils.NumericToFloat64(value)
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}

	response.Success(w, map[string]any{
		"items": items,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
