package handler

import (
	"net/http"
	"time"

	"finance/internal/delivery/http/response"
	"finance/internal/domain/entity"
	"finance/internal/errors"
	"finance/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = time.DateOnly

// TransactionHandler serves /transactions.
type TransactionHandler struct {
	uc usecase.TransactionUsecase
}

// NewTransactionHandler is the constructor for TransactionHandler, injected by Fx.
func NewTransactionHandler(uc usecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

type transactionRequest struct {
	ID          string `json:"id"`
	Type        int    `json:"type" validate:"oneof=0 1"`
	AmountCents int64  `json:"amountCents" validate:"gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (r transactionRequest) toInput() (*usecase.TransactionInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, errors.Wrap(err, "parse date")
	}

	return &usecase.TransactionInput{
		Type:        entity.TransactionType(r.Type),
		AmountCents: r.AmountCents,
		Date:        date,
	}, nil
}

type transactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        int       `json:"type"`
	AmountCents int64     `json:"amountCents"`
	Date        string    `json:"date"`
}

func toTransactionResponse(tx *entity.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        int(tx.Type),
		AmountCents: tx.AmountCents,
		Date:        tx.Date.Format(dateLayout),
	}
}

// List returns every transaction ordered by date. An empty ledger answers 404
// like the account list does.
func (h *TransactionHandler) List(c echo.Context) error {
	txs, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if len(txs) == 0 {
		return response.NotFound(c, "NO_TRANSACTIONS", "No transactions found.")
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// Get returns one transaction.
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid transaction id")
	}

	tx, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTransactionResponse(tx), "")
}

// Create records a new transaction.
func (h *TransactionHandler) Create(c echo.Context) error {
	input, err := h.bind(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	tx, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTransactionResponse(tx), "Transaction created")
}

// Update replaces the transaction whose id is given in the body.
func (h *TransactionHandler) Update(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid transaction id")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	tx, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTransactionResponse(tx), "Transaction updated")
}

// Delete removes one transaction.
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid transaction id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Transaction deleted")
}

func (h *TransactionHandler) bind(c echo.Context) (*usecase.TransactionInput, error) {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid transaction input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return req.toInput()
}
