package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/application/shopping"
)

// ShoppingHandlers handles the shopping list endpoint
type ShoppingHandlers struct {
	builder *shopping.Builder
	logger  *zap.Logger
}

// NewShoppingHandlers creates shopping handlers
func NewShoppingHandlers(builder *shopping.Builder, logger *zap.Logger) *ShoppingHandlers {
	return &ShoppingHandlers{builder: builder, logger: logger}
}

// Get handles GET /api/v1/shopping-list
func (h *ShoppingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.builder.BuildForWeek(r.Context(), userID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}
