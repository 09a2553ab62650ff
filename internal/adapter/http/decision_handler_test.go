package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/domain/user"
	"mata-finance/internal/testutil/activitymock"
	"mata-finance/internal/testutil/txmock"
	"mata-finance/internal/testutil/uowmock"
	uc "mata-finance/internal/usecase/decision"
	"mata-finance/pkg/id"

	"github.com/labstack/echo/v4"
)

func newDecisionHandler(repo *txmock.Repo) *DecisionHandler {
	return NewDecisionHandler(uc.NewUsecase(repo, uowmock.Passthrough(uow.Repos{
		Transactions: repo, Activities: &activitymock.Repo{},
	})))
}

func submittedTx(adminID string) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		TransactionID: id.NewID32(),
		Code:          "TRX-PAY-55667788",
		AdminID:       adminID,
		Status:        domain.StatusSubmitted,
		SubmittedAt:   &now,
	}
}

func TestDecide_Approve(t *testing.T) {
	e := newEchoWithValidator()
	tx := submittedTx(id.NewID32())
	repo := &txmock.Repo{
		GetByTransactionIDForUpdateFn: func(ctx context.Context, txID string) (*domain.Transaction, error) {
			return tx, nil
		},
	}
	h := newDecisionHandler(repo)

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions/x/decision",
		mustJSON(map[string]string{"outcome": "approved"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleApprover)
	c.SetParamNames("transaction_id")
	c.SetParamValues(tx.TransactionID)

	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got uc.DecisionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Outcome != "approved" || got.Code != tx.Code {
		t.Fatalf("dto = %+v", got)
	}
}

func TestDecide_UnknownOutcomeRejectedByValidator(t *testing.T) {
	e := newEchoWithValidator()
	h := newDecisionHandler(&txmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions/x/decision",
		mustJSON(map[string]string{"outcome": "maybe"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleApprover)

	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDecide_ShortRejectReasonIs422(t *testing.T) {
	e := newEchoWithValidator()
	h := newDecisionHandler(&txmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions/x/decision",
		mustJSON(map[string]string{"outcome": "rejected", "reason": "kurang"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleApprover)

	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDecide_RaceLoserGets409(t *testing.T) {
	e := newEchoWithValidator()
	tx := submittedTx(id.NewID32())
	repo := &txmock.Repo{
		GetByTransactionIDForUpdateFn: func(ctx context.Context, txID string) (*domain.Transaction, error) {
			return tx, nil
		},
		TransitionStatusFn: func(ctx context.Context, txID string, from, to domain.Status, updates map[string]any) (bool, error) {
			return false, nil
		},
	}
	h := newDecisionHandler(repo)

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions/x/decision",
		mustJSON(map[string]string{"outcome": "approved"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleApprover)
	c.SetParamNames("transaction_id")
	c.SetParamValues(tx.TransactionID)

	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
