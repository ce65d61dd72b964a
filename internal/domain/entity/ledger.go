package entity

import "time"

// LedgerEntryType classifies a wallet ledger entry.
type LedgerEntryType string

const (
	// LedgerEarn records credits awarded by pickup settlement.
	LedgerEarn LedgerEntryType = "earn"
	// LedgerRedeem records credits spent on a reward.
	LedgerRedeem LedgerEntryType = "redeem"
	// LedgerAdjustment records a manual admin override.
	LedgerAdjustment LedgerEntryType = "adjustment"
)

// String returns the string representation of the LedgerEntryType.
func (t LedgerEntryType) String() string {
	return string(t)
}

// IsValid checks if the LedgerEntryType is a valid value.
func (t LedgerEntryType) IsValid() bool {
	switch t {
	case LedgerEarn, LedgerRedeem, LedgerAdjustment:
		return true
	default:
		return false
	}
}

// LedgerEntry is one append-only wallet movement. The profile's cached
// balance and its ledger must always be updated in the same transaction.
type LedgerEntry struct {
	ID          uint64
	ProfileID   uint64
	Amount      int // Signed: positive for earn, negative for redeem.
	Type        LedgerEntryType
	Description string
	CreatedAt   time.Time
}
