package usecase

import "time"

const (
	// SettlementCacheTTL bounds how stale a cached settlement response can
	// get before it is recomputed anyway.
	SettlementCacheTTL = 5 * time.Minute

	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction.
	DefaultTransactionTimeout = 10 * time.Second
)
