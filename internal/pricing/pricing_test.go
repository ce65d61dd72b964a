package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edrop/internal/domain/entity"
	"edrop/internal/domain/service"
)

func TestEstimateManifest_PricesAndGrades(t *testing.T) {
	adapter := New(0, 0, 0)

	detections := []service.Detection{
		{Label: "laptop", Confidence: 0.92},
		{Label: "keyboard", Confidence: 0.71},
		{Label: "mouse", Confidence: 0.40},
	}

	estimates, total := adapter.EstimateManifest(detections)

	assert.Len(t, estimates, 3)
	assert.Equal(t, 630, total)

	assert.Equal(t, "laptop", estimates[0].ItemName)
	assert.Equal(t, 500, estimates[0].CreditValue)
	assert.Equal(t, entity.ConditionWorking, estimates[0].Condition)

	assert.Equal(t, 80, estimates[1].CreditValue)
	assert.Equal(t, entity.ConditionRepairable, estimates[1].Condition)

	assert.Equal(t, 50, estimates[2].CreditValue)
	assert.Equal(t, entity.ConditionScrap, estimates[2].Condition)
}

func TestEstimateManifest_DropsLabelsOutsideTaxonomy(t *testing.T) {
	adapter := New(0, 0, 0)

	detections := []service.Detection{
		{Label: "person", Confidence: 0.99},
		{Label: "bicycle", Confidence: 0.95},
		{Label: "monitor", Confidence: 0.85},
	}

	estimates, total := adapter.EstimateManifest(detections)

	assert.Len(t, estimates, 1)
	assert.Equal(t, "monitor", estimates[0].ItemName)
	assert.Equal(t, 200, total)
}

func TestEstimateManifest_DefaultValueForUnpricedLabel(t *testing.T) {
	adapter := New(0, 0, 0)

	estimates, total := adapter.EstimateManifest([]service.Detection{
		{Label: "Remote", Confidence: 0.88},
	})

	assert.Len(t, estimates, 1)
	assert.Equal(t, "remote", estimates[0].ItemName)
	assert.Equal(t, defaultCreditValue, estimates[0].CreditValue)
	assert.Equal(t, defaultCreditValue, total)
}

func TestEstimateManifest_ThresholdBoundaries(t *testing.T) {
	adapter := New(0, 0, 0)

	tests := []struct {
		name       string
		confidence float64
		expected   entity.ItemCondition
	}{
		{name: "just below scrap cutoff", confidence: 0.59, expected: entity.ConditionScrap},
		{name: "exactly at scrap cutoff", confidence: 0.60, expected: entity.ConditionRepairable},
		{name: "just below working cutoff", confidence: 0.79, expected: entity.ConditionRepairable},
		{name: "exactly at working cutoff", confidence: 0.80, expected: entity.ConditionWorking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimates, _ := adapter.EstimateManifest([]service.Detection{
				{Label: "laptop", Confidence: tt.confidence},
			})

			assert.Len(t, estimates, 1)
			assert.Equal(t, tt.expected, estimates[0].Condition)
		})
	}
}

func TestNew_CustomPolicy(t *testing.T) {
	adapter := New(25, 0.5, 0.9)

	estimates, total := adapter.EstimateManifest([]service.Detection{
		{Label: "toaster", Confidence: 0.55},
	})

	assert.Len(t, estimates, 1)
	assert.Equal(t, entity.ConditionRepairable, estimates[0].Condition)
	assert.Equal(t, 25, total)
}

func TestEstimateManifest_EmptyInput(t *testing.T) {
	adapter := New(0, 0, 0)

	estimates, total := adapter.EstimateManifest(nil)

	assert.Empty(t, estimates)
	assert.Zero(t, total)
}
