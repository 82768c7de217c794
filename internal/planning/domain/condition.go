package planning

import (
	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionWarning   = "warning"
	ConditionCritical  = "critical"
)

// ConditionResult describes remaining technical life of a component.
type ConditionResult struct {
	RemainingYears int     `json:"remaining_years"`
	Percentage     float64 `json:"percentage"`
	Status         string  `json:"status"`
}

// EvaluateCondition converts installation year, expected lifespan and the
// renovation history into a remaining-life fraction and a condition bucket.
//
// The reference year is the latest completed renovation year. Without one the
// installation year is used, and as a last resort the current year.
func EvaluateCondition(component portfolio.Component, history []portfolio.RenovationRecord, currentYear int) (ConditionResult, error) {
	if component.ExpectedLifespanYears <= 0 {
		return ConditionResult{}, ErrInvalidLifespan
	}

	referenceYear := 0
	for _, record := range history {
		if record.Status != portfolio.RenovationStatusCompleted {
			continue
		}
		if record.YearDone > referenceYear {
			referenceYear = record.YearDone
		}
	}
	if referenceYear == 0 {
		referenceYear = component.InstalledYear
	}
	if referenceYear == 0 {
		referenceYear = currentYear
	}

	endOfLife := referenceYear + component.ExpectedLifespanYears
	remaining := endOfLife - currentYear
	percentage := float64(remaining) / float64(component.ExpectedLifespanYears) * 100
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	return ConditionResult{
		RemainingYears: remaining,
		Percentage:     percentage,
		Status:         conditionStatus(percentage),
	}, nil
}

func conditionStatus(percentage float64) string {
	switch {
	case percentage > 75:
		return ConditionExcellent
	case percentage > 40:
		return ConditionGood
	case percentage > 15:
		return ConditionWarning
	default:
		return ConditionCritical
	}
}
