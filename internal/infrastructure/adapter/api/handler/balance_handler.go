package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/devshark/function-dynamodb-task/internal/domain/usecase/balance"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance-related HTTP requests
type BalanceHandler struct {
	reader *balance.Reader
	logger coreport.Logger
}

// NewBalanceHandler creates a new balance handler instance
func NewBalanceHandler(reader *balance.Reader, logger coreport.Logger) *BalanceHandler {
	return &BalanceHandler{
		reader: reader,
		logger: logger,
	}
}

// GetBalance handles the GET /user/{userId}/balance endpoint
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	formatted, err := h.reader.GetUserBalance(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		switch {
		case errors.Is(err, domainerr.ErrInvalidUserID):
			statusCode = http.StatusBadRequest
			errorMessage = "Invalid user ID"
		case errors.Is(err, domainerr.ErrUserNotFound):
			statusCode = http.StatusNotFound
			errorMessage = "User not found"
		}

		h.logger.Error("Error getting user balance", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})

		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: formatted,
	})
}
