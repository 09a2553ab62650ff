package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/domain/activity"

	"github.com/labstack/echo/v4"
)

type ActivityHandler struct{ repo activity.Repository }

func NewActivityHandler(repo activity.Repository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// ByRef returns the audit trail for one entity, oldest first. The trail is
// append-only, so this view is stable across reads.
func (h *ActivityHandler) ByRef(c echo.Context) error {
	list, err := h.repo.ListByEntityRef(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Mine returns everything the caller has done, newest first.
func (h *ActivityHandler) Mine(c echo.Context) error {
	list, err := h.repo.ListByActor(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
