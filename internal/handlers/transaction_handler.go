package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	alertService       services.AlertServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, alertService services.AlertServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, alertService: alertService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Description string    `json:"description" binding:"required,min=1,max=200"`
	Amount      int64     `json:"amount" binding:"required"`
	Category    string    `json:"category" binding:"required,min=1,max=100"`
	Date        time.Time `json:"date" binding:"required"`
	Notes       string    `json:"notes" binding:"omitempty,max=500"`
}

// CreateTransaction appends a transaction to the ledger and re-runs rule
// evaluation, since ledger mutations can cross budget and balance
// thresholds.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.transactionService.CreateTransaction(req.Description, req.Amount, req.Category, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.alertService.Evaluate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn, "notifications": notifications})
}

// GetTransactions lists transactions with optional filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be an RFC 3339 timestamp"))
			return
		}
		filter.FromDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be an RFC 3339 timestamp"))
			return
		}
		filter.ToDate = &t
	}
	filter.ExpensesOnly = c.Query("expenses_only") == "true"

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a single transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	txn, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// DeleteTransaction removes a transaction and re-runs rule evaluation.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.alertService.Evaluate(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
