package model

// CoinBalance is a read-only snapshot of a user's loyalty-coin account.
// The external ledger service owns the authoritative state; this snapshot is
// advisory for the duration of one pricing computation.
type CoinBalance struct {
	Balance     int64
	TotalEarned int64
	TotalSpent  int64
}
