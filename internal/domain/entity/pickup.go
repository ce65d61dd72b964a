// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// PickupStatus represents the lifecycle state of a pickup.
type PickupStatus string

const (
	// PickupScheduled means the pickup is booked and waiting for a collector.
	PickupScheduled PickupStatus = "scheduled"
	// PickupCollected means a collector has picked the items up and
	// settlement has run.
	PickupCollected PickupStatus = "collected"
	// PickupProcessed means the items went through warehouse processing.
	// Declared for forward compatibility; no operation drives a pickup here yet.
	PickupProcessed PickupStatus = "processed"
	// PickupCompleted means the whole lifecycle is finished.
	// Declared for forward compatibility; no operation drives a pickup here yet.
	PickupCompleted PickupStatus = "completed"
	// PickupCancelled means the dropper withdrew the booking before collection.
	PickupCancelled PickupStatus = "cancelled"
)

// String returns the string representation of the PickupStatus.
func (s PickupStatus) String() string {
	return string(s)
}

// IsValid checks if the PickupStatus is a valid value.
func (s PickupStatus) IsValid() bool {
	switch s {
	case PickupScheduled, PickupCollected, PickupProcessed, PickupCompleted, PickupCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. The lifecycle only moves forward: scheduled -> collected ->
// processed -> completed, with cancellation allowed from scheduled only.
func (s PickupStatus) CanTransitionTo(next PickupStatus) bool {
	switch s {
	case PickupScheduled:
		return next == PickupCollected || next == PickupCancelled
	case PickupCollected:
		return next == PickupProcessed
	case PickupProcessed:
		return next == PickupCompleted
	default:
		return false
	}
}

// IsCollected reports whether the pickup reached the collected state or any
// later one. Certificates may only be issued from this point on.
func (s PickupStatus) IsCollected() bool {
	switch s {
	case PickupCollected, PickupProcessed, PickupCompleted:
		return true
	default:
		return false
	}
}

// ItemCondition represents the assessed condition tier of a manifest item.
type ItemCondition string

const (
	// ConditionWorking marks an item that still functions.
	ConditionWorking ItemCondition = "working"
	// ConditionRepairable marks an item worth refurbishing.
	ConditionRepairable ItemCondition = "repairable"
	// ConditionScrap marks an item only good for material recovery.
	ConditionScrap ItemCondition = "scrap"
)

// String returns the string representation of the ItemCondition.
func (c ItemCondition) String() string {
	return string(c)
}

// IsValid checks if the ItemCondition is a valid value.
func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionWorking, ConditionRepairable, ConditionScrap:
		return true
	default:
		return false
	}
}

// electronicsKeywords are the item-name fragments that mark an item as a
// data-bearing device. Bookings containing one require data-wipe consent.
var electronicsKeywords = []string{"laptop", "phone", "tablet", "computer", "tv"}

// Pickup is the logistics ticket: one booked collection of e-waste items at
// a geographic point. It owns its manifest (Items) exclusively.
type Pickup struct {
	ID          uint64        // Surrogate identifier, also used in formatted order codes.
	ProfileID   uint64        // The wallet profile that owns this pickup.
	Status      PickupStatus  // Current lifecycle state, forward-only.
	PickupDate  time.Time     // Requested collection date.
	Timeslot    string        // Requested window, e.g. "Morning (9-12)".
	Latitude    float64       // Collection point latitude.
	Longitude   float64       // Collection point longitude.
	AddressText string        // Human-readable address.
	ImageURL    string        // Optional photo proof uploaded at booking time.
	Items       []*PickupItem // The manifest claimed at booking time.
	CreatedAt   time.Time
}

// TotalCredits sums the credit-value snapshots of the manifest. Values are
// fixed at booking time and never recomputed from a live price list.
func (p *Pickup) TotalCredits() int {
	total := 0
	for _, item := range p.Items {
		total += item.CreditValue
	}

	return total
}

// RequiresDataWipe reports whether any manifest item is a data-bearing
// electronic device.
func (p *Pickup) RequiresDataWipe() bool {
	for _, item := range p.Items {
		if IsElectronicsItem(item.ItemName) {
			return true
		}
	}

	return false
}

// IsElectronicsItem reports whether an item name matches the electronics
// keyword set that triggers the data-wipe consent requirement.
func IsElectronicsItem(name string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range electronicsKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	return false
}

// PickupItem is one manifest line: what the dropper claims to hand over.
// CreditValue is a price snapshot taken at booking, not a live reference.
type PickupItem struct {
	ID          uint64
	PickupID    uint64
	ItemName    string
	Condition   ItemCondition
	CreditValue int
	Description string // Optional free text from the dropper.
	YearsUsed   int    // Optional declared age, zero when unknown.
}
