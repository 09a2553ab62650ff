package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/usecase/notice"

	"github.com/labstack/echo/v4"
)

type NoticeHandler struct{ uc *notice.Usecase }

func NewNoticeHandler(uc *notice.Usecase) *NoticeHandler { return &NoticeHandler{uc: uc} }

func (h *NoticeHandler) Active(c echo.Context) error {
	list, err := h.uc.Active(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type exposureReq struct {
	Context string `json:"context" validate:"required"`
}

func (h *NoticeHandler) RecordExposure(c echo.Context) error {
	var req exposureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.RecordExposure(c.Request().Context(), middleware.ActorFrom(c).UserID,
		c.Param("notice_id"), req.Context)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *NoticeHandler) History(c echo.Context) error {
	list, err := h.uc.History(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
