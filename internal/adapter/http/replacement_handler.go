package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/usecase/replacement"

	"github.com/labstack/echo/v4"
)

type ReplacementHandler struct{ uc *replacement.Usecase }

func NewReplacementHandler(uc *replacement.Usecase) *ReplacementHandler {
	return &ReplacementHandler{uc: uc}
}

// Pending lists the caller's rejected transactions still awaiting a
// replacement, plus the unresolved count the client renders as an obligation
// badge.
func (h *ReplacementHandler) Pending(c echo.Context) error {
	adminID := middleware.ActorFrom(c).UserID
	list, err := h.uc.Pending(c.Request().Context(), adminID)
	if err != nil {
		return writeDomainError(c, err)
	}
	unresolved, err := h.uc.UnresolvedCount(c.Request().Context(), adminID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"unresolved_count": unresolved,
		"items":            list,
	})
}

func (h *ReplacementHandler) Create(c echo.Context) error {
	dto, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c).UserID, c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
