package handlers

import (
	"net/http"
	"time"

	"loyalty-order-services/pkg/response"
)

type bankRow struct {
	ID        int64     `json:"id"`
	BankName  string    `json:"bankName"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) GetBanks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
		select id, bank_name, coalesce(code, ''), created_at
		from banks
		where is_deleted = false
		order by bank_name asc`)
	if err != nil {
		h.Logger.Error("list banks failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load banks")
		return
	}
	defer rows.Close()

	items := make([]bankRow, 0)
	for rows.Next() {
		var row bankRow
		if err := rows.Scan(&row.ID, &row.BankName, &row.Code, &row.CreatedAt); err != nil {
			h.Logger.Error("scan bank row failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load banks")
			return
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list banks failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load banks")
		return
	}

	response.Success(w, items)
}
