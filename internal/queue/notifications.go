package queue

import (
	"context"
	"fmt"
	"time"
)

const (
	OrderEventsExchange   = "order-events"
	OrderStatusQueue      = "order-status-notifications"
	OrderStatusRoutingKey = "order.status.updated"
	InvoiceRoutingKey     = "invoice.generated"
	InvoiceGeneratedQueue = "invoice-notifications"
	WhatsAppRoutingKey    = "notify.whatsapp"
	WhatsAppJobsQueue     = "whatsapp-jobs"
)

// OrderStatusEvent is the payload fanned out to downstream consumers
// (notification senders, audit log) when an order changes status.
type OrderStatusEvent struct {
	OrderType   string    `json:"orderType"`
	OrderID     int64     `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
	ChangedAt   time.Time `json:"changedAt"`
	Source      string    `json:"source"`
}

type InvoiceGeneratedEvent struct {
	BankName    string    `json:"bankName"`
	PeriodStart string    `json:"periodStart"`
	PeriodEnd   string    `json:"periodEnd"`
	OrderCount  int       `json:"orderCount"`
	TotalAmount float64   `json:"totalAmount"`
	DocumentURL string    `json:"documentUrl"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// WhatsAppJob is consumed by the external messaging worker. This service
// only enqueues; delivery happens elsewhere.
type WhatsAppJob struct {
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	OrderNumber string    `json:"orderNumber"`
	EnqueuedAt  time.Time `json:"enqueuedAt"`
}

var statusMessages = map[string]string{
	"confirmed":  "Your order %s has been confirmed.",
	"processing": "Your order %s is being processed.",
	"dispatched": "Your order %s has been dispatched.",
	"shipped":    "Your order %s has been shipped.",
	"delivered":  "Your order %s has been delivered. Thank you!",
	"cancelled":  "Your order %s has been cancelled.",
}

// BuildWhatsAppJob turns an order status event into a customer-facing
// message job. Returns false for statuses customers are not notified about.
func BuildWhatsAppJob(event OrderStatusEvent, phone string) (WhatsAppJob, bool) {
	tmpl, ok := statusMessages[event.NewStatus]
	if !ok || phone == "" {
		return WhatsAppJob{}, false
	}
	return WhatsAppJob{
		Phone:       phone,
		Message:     fmt.Sprintf(tmpl, event.OrderNumber),
		OrderNumber: event.OrderNumber,
		EnqueuedAt:  event.ChangedAt,
	}, true
}

func PublishWhatsAppJob(ctx context.Context, pub Publisher, job WhatsAppJob) error {
	if pub == nil {
		return nil
	}
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now()
	}
	return pub.PublishJSON(ctx, OrderEventsExchange, WhatsAppRoutingKey, job)
}

// Publisher is the broker surface the HTTP layer depends on. It is nil-safe
// so the service can run without RabbitMQ configured.
type Publisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, payload any) error
}

// Setup declares the exchange, queues, and bindings this service publishes
// through. Safe to call on every boot.
func Setup(c *Client) error {
	if err := c.EnsureExchange(OrderEventsExchange); err != nil {
		return err
	}
	if _, err := c.EnsureQueue(OrderStatusQueue); err != nil {
		return err
	}
	if err := c.BindQueue(OrderStatusQueue, OrderEventsExchange, OrderStatusRoutingKey); err != nil {
		return err
	}
	if _, err := c.EnsureQueue(InvoiceGeneratedQueue); err != nil {
		return err
	}
	if err := c.BindQueue(InvoiceGeneratedQueue, OrderEventsExchange, InvoiceRoutingKey); err != nil {
		return err
	}
	if _, err := c.EnsureQueue(WhatsAppJobsQueue); err != nil {
		return err
	}
	return c.BindQueue(WhatsAppJobsQueue, OrderEventsExchange, WhatsAppRoutingKey)
}

func PublishOrderStatus(ctx context.Context, pub Publisher, event OrderStatusEvent) error {
	if pub == nil {
		return nil
	}
	if event.ChangedAt.IsZero() {
		event.ChangedAt = time.Now()
	}
	return pub.PublishJSON(ctx, OrderEventsExchange, OrderStatusRoutingKey, event)
}

func PublishInvoiceGenerated(ctx context.Context, pub Publisher, event InvoiceGeneratedEvent) error {
	if pub == nil {
		return nil
	}
	if event.GeneratedAt.IsZero() {
		event.GeneratedAt = time.Now()
	}
	return pub.PublishJSON(ctx, OrderEventsExchange, InvoiceRoutingKey, event)
}
