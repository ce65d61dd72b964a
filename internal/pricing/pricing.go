// Package pricing turns raw detector output into a priced manifest
// estimate. It is a pure transform: no I/O, no persistence.
package pricing

import (
	"strings"

	"edrop/internal/domain/entity"
	"edrop/internal/domain/service"
)

const (
	defaultCreditValue = 10
	defaultScrapBelow  = 0.6
	defaultWorkingFrom = 0.8
)

// allowedLabels is the fixed e-waste taxonomy. Detector labels outside this
// set are dropped before pricing; the detector vocabulary (COCO) is much
// wider than what the platform accepts.
var allowedLabels = map[string]struct{}{
	"laptop":       {},
	"cell phone":   {},
	"phone":        {},
	"mouse":        {},
	"keyboard":     {},
	"monitor":      {},
	"tv":           {},
	"remote":       {},
	"microwave":    {},
	"oven":         {},
	"toaster":      {},
	"refrigerator": {},
	"hair drier":   {},
	"apple":        {}, // detector sanity check during testing
}

// priceList maps lowercase labels to credit values. Allowed labels missing
// here get the adapter's default value.
var priceList = map[string]int{
	"laptop":   500,
	"phone":    300,
	"mouse":    50,
	"keyboard": 80,
	"monitor":  200,
	"apple":    5,
}

// Estimate is one priced line of a scan result. CreditValue here is an
// estimate only; the booking manifest carries its own snapshot.
type Estimate struct {
	ItemName    string
	Condition   entity.ItemCondition
	CreditValue int
	Confidence  float64
}

// Adapter grades and prices detections. Thresholds are policy constants,
// not a model output.
type Adapter struct {
	defaultValue int
	scrapBelow   float64
	workingFrom  float64
}

// New builds an Adapter. Zero-valued arguments fall back to the standard
// policy (default 10 credits, scrap below 0.6, working from 0.8).
func New(defaultValue int, scrapBelow, workingFrom float64) *Adapter {
	if defaultValue <= 0 {
		defaultValue = defaultCreditValue
	}
	if scrapBelow <= 0 {
		scrapBelow = defaultScrapBelow
	}
	if workingFrom <= 0 {
		workingFrom = defaultWorkingFrom
	}

	return &Adapter{
		defaultValue: defaultValue,
		scrapBelow:   scrapBelow,
		workingFrom:  workingFrom,
	}
}

// EstimateManifest filters detections against the e-waste allow-list,
// grades each survivor by confidence and prices it. Returns the priced
// lines and their credit total.
func (a *Adapter) EstimateManifest(detections []service.Detection) ([]Estimate, int) {
	estimates := make([]Estimate, 0, len(detections))
	total := 0

	for _, detection := range detections {
		label := strings.ToLower(strings.TrimSpace(detection.Label))
		if _, ok := allowedLabels[label]; !ok {
			continue
		}

		value, ok := priceList[label]
		if !ok {
			value = a.defaultValue
		}

		estimate := Estimate{
			ItemName:    label,
			Condition:   a.gradeCondition(detection.Confidence),
			CreditValue: value,
			Confidence:  detection.Confidence,
		}

		estimates = append(estimates, estimate)
		total += value
	}

	return estimates, total
}

func (a *Adapter) gradeCondition(confidence float64) entity.ItemCondition {
	switch {
	case confidence < a.scrapBelow:
		return entity.ConditionScrap
	case confidence < a.workingFrom:
		return entity.ConditionRepairable
	default:
		return entity.ConditionWorking
	}
}
