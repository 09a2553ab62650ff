package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mata-finance/internal/adapter/middleware"
	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/domain/user"
	"mata-finance/internal/testutil/activitymock"
	"mata-finance/internal/testutil/txmock"
	"mata-finance/internal/testutil/uowmock"
	uc "mata-finance/internal/usecase/transaction"
	"mata-finance/pkg/id"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newTxHandler(repo *txmock.Repo, acts *activitymock.Repo) *TransactionHandler {
	return NewTransactionHandler(uc.NewUsecase(repo, uowmock.Passthrough(uow.Repos{
		Transactions: repo, Activities: acts,
	})))
}

func actorCtx(e *echo.Echo, req *stdhttp.Request, rec *httptest.ResponseRecorder, actorID string, role user.Role) echo.Context {
	c := e.NewContext(req, rec)
	middleware.SetActor(c, middleware.Actor{UserID: actorID, Role: role})
	return c
}

// -------- tests --------

func TestCreateTransaction_Success(t *testing.T) {
	e := newEchoWithValidator()
	repo := &txmock.Repo{}
	h := newTxHandler(repo, &activitymock.Repo{})

	admin := id.NewID32()
	reqBody := map[string]any{
		"type":           "payment",
		"amount":         25_000_000,
		"recipient_name": "PT Sumber Makmur",
		"ocr_amount":     25_000_000,
		"items": []map[string]any{
			{"label": "Sewa", "amount": 20_000_000},
			{"label": "Asuransi", "amount": 5_000_000},
		},
		"documents": []map[string]any{
			{"category": "invoice", "file_url": "https://files.example.com/inv.pdf", "ocr_match": "match"},
		},
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, admin, user.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got uc.TransactionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != "draft" || got.Amount != 25_000_000 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.HoursRemaining != 24 {
		t.Fatalf("hours_remaining = %d, want 24", got.HoursRemaining)
	}
	if !strings.HasPrefix(got.Code, "TRX-PAY-") {
		t.Fatalf("code = %q", got.Code)
	}
}

func TestCreateTransaction_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := newTxHandler(&txmock.Repo{}, &activitymock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions", strings.NewReader(`{"amount":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newTxHandler(&txmock.Repo{}, &activitymock.Repo{})

	// amount has 3 decimals, recipient missing, bad type
	reqBody := map[string]any{
		"type":   "loan",
		"amount": 100.123,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" {
		t.Fatalf("error = %q", er.Error)
	}
	if !containsFieldMsg(er.Details, "Amount", "decimal") {
		t.Fatalf("missing dec2 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "RecipientName", "required") {
		t.Fatalf("missing required detail: %+v", er.Details)
	}
}

func TestGetTransaction_ForbiddenForOtherAdmin(t *testing.T) {
	e := newEchoWithValidator()
	owner := id.NewID32()
	repo := &txmock.Repo{
		GetByTransactionIDFn: func(ctx context.Context, txID string) (*domain.Transaction, error) {
			return &domain.Transaction{TransactionID: txID, AdminID: owner, Status: domain.StatusDraft}, nil
		},
	}
	h := newTxHandler(repo, &activitymock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/transactions/x", nil)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, id.NewID32(), user.RoleAdmin)
	c.SetParamNames("transaction_id")
	c.SetParamValues(id.NewID32())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestSubmitTransaction_ConflictOnStaleState(t *testing.T) {
	e := newEchoWithValidator()
	admin := id.NewID32()
	ocr := 10_000_000.0
	tx := &domain.Transaction{
		TransactionID: id.NewID32(),
		Code:          "TRX-PAY-AABBCCDD",
		AdminID:       admin,
		Type:          domain.TypePayment,
		Amount:        10_000_000,
		OCRAmount:     &ocr,
		Status:        domain.StatusDraft,
		CreatedAt:     time.Now().UTC(),
		Documents: []domain.Document{
			{Category: "invoice", OCRMatch: domain.OCRMatched},
			{Category: "transfer_proof", OCRMatch: domain.OCRMatched},
		},
	}
	repo := &txmock.Repo{
		GetByTransactionIDForUpdateFn: func(ctx context.Context, txID string) (*domain.Transaction, error) {
			return tx, nil
		},
		TransitionStatusFn: func(ctx context.Context, txID string, from, to domain.Status, updates map[string]any) (bool, error) {
			return false, nil // someone else moved it first
		},
	}
	h := newTxHandler(repo, &activitymock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/transactions/x/submit", nil)
	rec := httptest.NewRecorder()
	c := actorCtx(e, req, rec, admin, user.RoleAdmin)
	c.SetParamNames("transaction_id")
	c.SetParamValues(tx.TransactionID)

	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
