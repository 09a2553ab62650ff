package http

import (
	"net/http"

	"mata-finance/internal/usecase/queue"

	"github.com/labstack/echo/v4"
)

type QueueHandler struct{ svc *queue.Service }

func NewQueueHandler(svc *queue.Service) *QueueHandler { return &QueueHandler{svc: svc} }

type queueQuery struct {
	Type      string `query:"type"       validate:"omitempty,oneof=payment reimbursement procurement transfer"`
	RiskLevel string `query:"risk_level" validate:"omitempty,oneof=low medium high"`
}

func (h *QueueHandler) Queue(c echo.Context) error {
	var q queueQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	items, err := h.svc.Queue(c.Request().Context(), queue.Filters{Type: q.Type, RiskLevel: q.RiskLevel})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}
