package dto

// BalanceResponse represents a coin balance snapshot.
type BalanceResponse struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
}
