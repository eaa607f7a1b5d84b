package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"loyalty-order-services/internal/orders"
	"loyalty-order-services/internal/queue"
	"loyalty-order-services/pkg/response"
)

type orderStatusWebhook struct {
	OrderType   string `json:"orderType"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// OrderStatusWebhook ingests status callbacks from the fulfilment partners.
// The shared-secret guard runs in the router before this handler.
func (h *Handler) OrderStatusWebhook(w http.ResponseWriter, r *http.Request) {
	var req orderStatusWebhook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.OrderNumber == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "orderNumber is required")
		return
	}

	status := orders.NormalizeStatus(req.Status)
	if !status.Valid() {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status")
		return
	}

	stream := orders.StreamBank
	table := "bank_orders"
	switch req.OrderType {
	case "", "bank", "bank_orders":
	case "bip", "bip_orders":
		stream = orders.StreamBip
		table = "bip_orders"
	default:
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown order type")
		return
	}

	var (
		orderID   int64
		oldStatus string
		phone     string
	)
	// The prev subquery captures the pre-update status and phone.
	err := h.DB.QueryRow(r.Context(), `
		update `+table+` o
		set status = $1, updated_at = now()
		from (
			select id, status, coalesce(customer_phone, '') as phone
			from `+table+`
			where order_number = $2 and is_deleted = false
		) prev
		where o.id = prev.id
		returning o.id, prev.status, prev.phone`,
		orders.NativeStatus(stream, status), req.OrderNumber,
	).Scan(&orderID, &oldStatus, &phone)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		h.Logger.Error("webhook status update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	event := queue.OrderStatusEvent{
		OrderType:   string(stream),
		OrderID:     orderID,
		OrderNumber: req.OrderNumber,
		OldStatus:   string(orders.NormalizeStatus(oldStatus)),
		NewStatus:   string(status),
		ChangedAt:   time.Now(),
		Source:      "webhook",
	}
	if err := queue.PublishOrderStatus(r.Context(), h.publisher(), event); err != nil {
		h.Logger.Warn("publish order status event failed", zapError(err))
	}
	if job, ok := queue.BuildWhatsAppJob(event, phone); ok {
		if err := queue.PublishWhatsAppJob(r.Context(), h.publisher(), job); err != nil {
			h.Logger.Warn("publish whatsapp job failed", zapError(err))
		}
	}

	response.Success(w, map[string]any{
		"orderNumber": req.OrderNumber,
		"status":      string(status),
	})
}
