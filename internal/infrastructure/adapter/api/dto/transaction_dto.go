package dto

// TransactionRequest represents the API request for recording a transaction
type TransactionRequest struct {
	IdempotencyKey string `json:"idempotencyKey" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=CREDIT DEBIT"`
}

// TransactionResponse represents the API response for a recorded transaction
type TransactionResponse struct {
	IdempotencyKey string `json:"idempotencyKey"`
	UserID         string `json:"userId"`
	Success        bool   `json:"success"`
}
