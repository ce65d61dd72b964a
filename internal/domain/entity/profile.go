package entity

import (
	"time"

	"github.com/google/uuid"
)

// Badge tier thresholds, evaluated highest-first with strict comparison.
const (
	badgeEarthGuardianMin = 100.0
	badgeEcoWarriorMin    = 50.0
	badgeRookieMin        = 20.0
)

// Profile is a user's carbon wallet and impact record. It exclusively owns
// the user's pickups and ledger entries. CarbonBalance is a cached running
// balance; every mutation must append a ledger entry in the same transaction.
type Profile struct {
	ID            uint64
	UserID        uuid.UUID // Stable principal id from the identity provider.
	FullName      string    // Display name snapshot used on certificates.
	CarbonBalance int       // Redeemable credits.
	CO2Saved      float64   // Cumulative estimated impact in kg.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BadgeLevel derives the gamification tier from the accumulated CO2 savings.
func (p *Profile) BadgeLevel() string {
	return BadgeForCO2(p.CO2Saved)
}

// BadgeForCO2 maps a CO2-saved figure to a badge tier.
func BadgeForCO2(co2Saved float64) string {
	switch {
	case co2Saved > badgeEarthGuardianMin:
		return "Earth Guardian"
	case co2Saved > badgeEcoWarriorMin:
		return "Eco Warrior"
	case co2Saved > badgeRookieMin:
		return "Recycling Rookie"
	default:
		return "Green Starter"
	}
}
