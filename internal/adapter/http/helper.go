package http

import (
	"errors"
	"net/http"
	"strings"

	domainNotice "mata-finance/internal/domain/notice"
	domain "mata-finance/internal/domain/transaction"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeDomainError maps the domain error taxonomy onto HTTP codes. Anything
// unrecognized is a 500 with a generic body; internals never leak to clients.
func writeDomainError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Msg})
	}
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: te.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrReplacementExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domainNotice.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
