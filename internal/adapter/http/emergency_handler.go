package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/usecase/emergency"

	"github.com/labstack/echo/v4"
)

type EmergencyHandler struct{ uc *emergency.Usecase }

func NewEmergencyHandler(uc *emergency.Usecase) *EmergencyHandler {
	return &EmergencyHandler{uc: uc}
}

type emergencyReq struct {
	Justification string `json:"justification" validate:"required,min=5"`
}

func (h *EmergencyHandler) Create(c echo.Context) error {
	var req emergencyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c).UserID,
		c.Param("transaction_id"), req.Justification)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *EmergencyHandler) Pending(c echo.Context) error {
	list, err := h.uc.Pending(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
