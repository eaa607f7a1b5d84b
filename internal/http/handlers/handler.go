package handlers

import (
	"loyalty-order-services/internal/config"
	"loyalty-order-services/internal/dashboard"
	"loyalty-order-services/internal/queue"
	"loyalty-order-services/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *pgxpool.Pool
	Logger    *zap.Logger
	Config    config.Config
	Queue     *queue.Client
	Dashboard *dashboard.Service
	Store     *storage.ObjectStore
}

// publisher returns the queue as the nil-safe Publisher interface. A typed
// nil *queue.Client must become a true nil interface.
func (h *Handler) publisher() queue.Publisher {
	if h.Queue == nil {
		return nil
	}
	return h.Queue
}
