package dto

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}
