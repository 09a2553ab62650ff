package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/usecase/decision"

	"github.com/labstack/echo/v4"
)

type DecisionHandler struct{ uc *decision.Usecase }

func NewDecisionHandler(uc *decision.Usecase) *DecisionHandler {
	return &DecisionHandler{uc: uc}
}

type decideReq struct {
	Outcome string `json:"outcome" validate:"required,oneof=approved rejected returned_for_revision"`
	Reason  string `json:"reason"`
}

func (h *DecisionHandler) Decide(c echo.Context) error {
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decide(c.Request().Context(), middleware.ActorFrom(c).UserID,
		c.Param("transaction_id"), decision.DecideInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DecisionHandler) MyDecisions(c echo.Context) error {
	list, err := h.uc.MyDecisions(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
