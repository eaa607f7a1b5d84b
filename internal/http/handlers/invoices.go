package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"loyalty-order-services/internal/invoice"
	"loyalty-order-services/internal/orders"
	"loyalty-order-services/internal/queue"
	"loyalty-order-services/internal/utils"
	"loyalty-order-services/pkg/response"
)

const invoiceDateLayout = "2006-01-02"

type generateInvoiceRequest struct {
	BankID    int64  `json:"bankId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	OrderType string `json:"orderType"`
}

// GenerateInvoice renders a billing PDF for one bank's dispatched and
// cancelled orders over a date range and archives it to the object store.
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		response.Error(w, http.StatusServiceUnavailable, "INTERNAL_ERROR", "Invoice archive is not configured")
		return
	}

	var req generateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.BankID <= 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "bankId is required")
		return
	}

	loc := h.Config.Location()
	from, err := time.ParseInLocation(invoiceDateLayout, req.StartDate, loc)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start date")
		return
	}
	endDay, err := time.ParseInLocation(invoiceDateLayout, req.EndDate, loc)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end date")
		return
	}
	// End date covers its whole calendar day.
	until := endDay.AddDate(0, 0, 1)

	stream := orders.StreamBank
	table := "bank_orders"
	valueCol := "redeemed_points"
	switch req.OrderType {
	case "", "bank_orders":
	case "bip_orders":
		stream = orders.StreamBip
		table = "bip_orders"
		valueCol = "amount"
	default:
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown order type")
		return
	}

	var bankName string
	err = h.DB.QueryRow(r.Context(),
		"select bank_name from banks where id = $1 and is_deleted = false", req.BankID,
	).Scan(&bankName)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Bank not found")
		return
	}
	if err != nil {
		h.Logger.Error("load bank failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
		return
	}

	billable := orders.NativeStatuses(stream, []orders.Status{orders.StatusDispatched, orders.StatusCancelled})
	rows, err := h.DB.Query(r.Context(), `
		select o.order_number, o.customer_name, o.product, to_char(o.order_date, 'YYYY-MM-DD'),
			o.status, o.`+valueCol+`,
			coalesce(c.courier_name, ''), coalesce(s.tracking_number, '')
		from `+table+` o
		left join shipments s on s.order_number = o.order_number and s.is_deleted = false
		left join couriers c on c.id = s.courier_id
		where o.is_deleted = false
			and o.bank_id = $1
			and o.order_date >= $2 and o.order_date < $3
			and o.status = any($4)
		order by o.order_date asc, o.order_number asc`,
		req.BankID, from, until, billable)
	if err != nil {
		h.Logger.Error("load invoice orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
		return
	}
	defer rows.Close()

	var lines []invoice.Line
	for rows.Next() {
		var (
			line  invoice.Line
			value pgtype.Numeric
		)
		if err := rows.Scan(&line.OrderNumber, &line.CustomerName, &line.Product, &line.OrderDate,
			&line.Status, &value, &line.Courier, &line.TrackingNumber); err != nil {
			h.Logger.Error("scan invoice line failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
			return
		}
		line.Status = string(orders.NormalizeStatus(line.Status))
		line.Amount = utils.NumericToFloat64(value)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("load invoice orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
		return
	}

	doc := invoice.Document{
		BankName:    bankName,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		GeneratedAt: time.Now().In(loc).Format("2006-01-02 15:04"),
		Lines:       lines,
	}
	doc.TotalAmount = doc.BillableTotal()

	pdfData, err := invoice.BuildPDF(doc)
	if err != nil {
		h.Logger.Error("render invoice pdf failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
		return
	}

	key := invoice.ObjectKey(bankName, req.StartDate, req.EndDate)
	url, err := h.Store.PutObject(r.Context(), key, pdfData, "application/pdf")
	if err != nil {
		h.Logger.Error("archive invoice failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to archive invoice")
		return
	}

	event := queue.InvoiceGeneratedEvent{
		BankName:    bankName,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		OrderCount:  len(lines),
		TotalAmount: doc.TotalAmount,
		DocumentURL: url,
	}
	if err := queue.PublishInvoiceGenerated(r.Context(), h.publisher(), event); err != nil {
		// Archival succeeded; a missed notification is not worth a 500.
		h.Logger.Warn("publish invoice event failed", zapError(err))
	}

	response.Success(w, map[string]any{
		"url":         url,
		"bankName":    bankName,
		"orderCount":  len(lines),
		"totalAmount": doc.TotalAmount,
	})
}

type archivedInvoice struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// GetInvoiceArchive lists the invoices previously generated for a bank.
func (h *Handler) GetInvoiceArchive(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		response.Error(w, http.StatusServiceUnavailable, "INTERNAL_ERROR", "Invoice archive is not configured")
		return
	}

	bankID, err := readPathInt64(r, "bankId")
	if err != nil || bankID <= 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bank id")
		return
	}

	var bankName string
	err = h.DB.QueryRow(r.Context(),
		"select bank_name from banks where id = $1 and is_deleted = false", bankID,
	).Scan(&bankName)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Bank not found")
		return
	}
	if err != nil {
		h.Logger.Error("load bank failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}

	keys, err := h.Store.ListKeys(r.Context(), invoice.ArchivePrefix(bankName))
	if err != nil {
		h.Logger.Error("list archived invoices failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}

	items := make([]archivedInvoice, 0, len(keys))
	for _, key := range keys {
		items = append(items, archivedInvoice{Key: key, URL: h.Store.PublicURL(key)})
	}
	response.Success(w, map[string]any{
		"bankName": bankName,
		"items":    items,
	})
}

// DeleteInvoiceArchive removes one archived invoice document by key.
func (h *Handler) DeleteInvoiceArchive(w http.ResponseWriter, r *http.Request) {
	key := readQueryString(r, "key")
	// Only invoice documents are deletable through this endpoint.
	if !strings.HasPrefix(key, "invoices/") || strings.Contains(key, "..") {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "key must reference an archived invoice")
		return
	}
	if h.Store == nil {
		response.Error(w, http.StatusServiceUnavailable, "INTERNAL_ERROR", "Invoice archive is not configured")
		return
	}

	if err := h.Store.DeleteKey(r.Context(), key); err != nil {
		h.Logger.Error("delete archived invoice failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete invoice")
		return
	}
	response.Success(w, map[string]any{"key": key})
}
