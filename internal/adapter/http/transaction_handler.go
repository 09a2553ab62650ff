package http

import (
	"net/http"

	"mata-finance/internal/adapter/middleware"
	"mata-finance/internal/usecase/transaction"

	"github.com/labstack/echo/v4"
)

type TransactionHandler struct{ uc *transaction.Usecase }

func NewTransactionHandler(uc *transaction.Usecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

type itemReq struct {
	Label  string  `json:"label"  validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

type documentReq struct {
	Category        string   `json:"category"  validate:"required,oneof=invoice receipt transfer_proof purchase_order"`
	FileURL         string   `json:"file_url"  validate:"required,url"`
	OCRMatch        string   `json:"ocr_match" validate:"omitempty,oneof=pending match conflict"`
	ExtractedAmount *float64 `json:"extracted_amount" validate:"omitempty,gt=0"`
}

type createTransactionReq struct {
	Type          string        `json:"type"           validate:"omitempty,oneof=payment reimbursement procurement transfer"`
	Amount        float64       `json:"amount"         validate:"required,gt=0,dec2"`
	Currency      string        `json:"currency"       validate:"omitempty,len=3"`
	Description   string        `json:"description"`
	RecipientName string        `json:"recipient_name" validate:"required"`
	VendorRef     string        `json:"vendor_ref"`
	CostCenter    string        `json:"cost_center"`
	RiskLevel     string        `json:"risk_level"     validate:"omitempty,oneof=low medium high"`
	OCRAmount     *float64      `json:"ocr_amount"     validate:"omitempty,gt=0"`
	Flags         []string      `json:"flags"`
	Items         []itemReq     `json:"items"          validate:"omitempty,dive"`
	Documents     []documentReq `json:"documents"      validate:"omitempty,dive"`
}

func (h *TransactionHandler) Create(c echo.Context) error {
	var req createTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := transaction.CreateInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		RecipientName: req.RecipientName,
		VendorRef:     req.VendorRef,
		CostCenter:    req.CostCenter,
		RiskLevel:     req.RiskLevel,
		OCRAmount:     req.OCRAmount,
		Flags:         req.Flags,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, transaction.ItemInput(it))
	}
	for _, d := range req.Documents {
		in.Documents = append(in.Documents, transaction.DocumentInput(d))
	}

	dto, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c).UserID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	dto, err := h.uc.Get(c.Request().Context(), actor.UserID, actor.Role, c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TransactionHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListMine(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type updateTransactionReq struct {
	Amount        *float64 `json:"amount"     validate:"omitempty,gt=0,dec2"`
	Description   *string  `json:"description"`
	RecipientName *string  `json:"recipient_name"`
	VendorRef     *string  `json:"vendor_ref"`
	CostCenter    *string  `json:"cost_center"`
	OCRAmount     *float64 `json:"ocr_amount" validate:"omitempty,gt=0"`
}

func (h *TransactionHandler) Update(c echo.Context) error {
	var req updateTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), middleware.ActorFrom(c).UserID,
		c.Param("transaction_id"), transaction.UpdateInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TransactionHandler) ExpiringDrafts(c echo.Context) error {
	list, err := h.uc.ExpiringDrafts(c.Request().Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Submit(c echo.Context) error {
	dto, err := h.uc.Submit(c.Request().Context(), middleware.ActorFrom(c).UserID, c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
