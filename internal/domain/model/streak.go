package model

// StreakState mirrors the daily bonus eligibility returned by the ledger
// service. The streak arithmetic and the bonus interpolation are authoritative
// on the service side; this engine only renders whatever it returns.
type StreakState struct {
	CurrentStreak         int
	CanClaim              bool
	SecondsUntilNextClaim int64
	NextBonusAmount       int64
}

// ClaimResult describes the outcome of a successful daily bonus claim.
type ClaimResult struct {
	NewStreak   int
	BonusAmount int64
}
