package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/devshark/function-dynamodb-task/internal/domain/usecase/ledger"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	service ledger.Service
	logger  coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(service ledger.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  logger,
	}
}

// RecordTransaction handles the POST /user/{userId}/transaction endpoint
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	transactReq := ledger.TransactRequest{
		IdempotencyKey: req.IdempotencyKey,
		UserID:         userID,
		Amount:         req.Amount,
		Type:           req.Type,
	}

	if err := h.service.Transact(c.Request.Context(), transactReq); err != nil {
		statusCode, errorMessage := statusForTransactError(err)

		h.logger.Error("Error recording transaction", map[string]any{
			"userId":          userID,
			"idempotency_key": req.IdempotencyKey,
			"error":           err.Error(),
		})

		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		IdempotencyKey: req.IdempotencyKey,
		UserID:         userID,
		Success:        true,
	})
}

// statusForTransactError maps domain errors to HTTP status codes
func statusForTransactError(err error) (int, string) {
	switch {
	case errors.Is(err, domainerr.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case domainerr.IsInsufficientBalanceError(err):
		return http.StatusUnprocessableEntity, err.Error()
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
