package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mata-finance/internal/usecase/signal"

	"github.com/labstack/echo/v4"
)

type SignalHandler struct{ uc *signal.Usecase }

func NewSignalHandler(uc *signal.Usecase) *SignalHandler { return &SignalHandler{uc: uc} }

type recordSignalReq struct {
	Name    string          `json:"name"    validate:"required,oneof=PRESSURE_METRIC GLOBAL_URGENCY"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

func (h *SignalHandler) Record(c echo.Context) error {
	var req recordSignalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Record(c.Request().Context(), req.Name, req.Payload)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SignalHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.uc.Recent(c.Request().Context(), c.Param("name"), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
