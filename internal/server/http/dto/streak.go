package dto

// StreakResponse mirrors the daily bonus state served by the ledger.
type StreakResponse struct {
	CurrentStreak         int   `json:"current_streak"`
	CanClaim              bool  `json:"can_claim"`
	SecondsUntilNextClaim int64 `json:"seconds_until_next_claim"`
	NextBonusAmount       int64 `json:"next_bonus_amount"`
}

// ClaimResponse describes a successful daily bonus claim.
type ClaimResponse struct {
	Streak      int   `json:"streak"`
	BonusAmount int64 `json:"bonus_amount"`
}
