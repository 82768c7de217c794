package planning

import (
	"strings"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
)

const (
	PriorityImmediate = "immediate"
	PriorityHigh      = "high"
	PriorityMedium    = "medium"
	PriorityLow       = "low"
)

// PriorityWeights blends the four urgency factors into one score.
type PriorityWeights struct {
	Technical float64 `yaml:"technical"`
	Risk      float64 `yaml:"risk"`
	ROI       float64 `yaml:"roi"`
	Nuisance  float64 `yaml:"nuisance"`
}

// DefaultPriorityWeights returns the production weighting.
func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{
		Technical: 0.4,
		Risk:      0.3,
		ROI:       0.15,
		Nuisance:  0.15,
	}
}

// PriorityResult is the urgency score for one renovation.
type PriorityResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Components whose failure interrupts habitability.
var criticalInfrastructure = []string{"roof", "main piping", "sewer", "drainage"}

// Components with meaningful energy payback.
var energyRelevant = []string{"heating", "window", "facade", "heat recovery", "ground source"}

// ScorePriority combines condition severity, failure risk class, energy ROI
// class and disruption class into a weighted urgency score. Severity 4 forces
// an immediate label regardless of the weighted factors. Without assessments
// the severity defaults to 1.
func ScorePriority(componentName string, assessments []portfolio.Assessment, weights PriorityWeights) PriorityResult {
	maxSeverity := 1
	for _, assessment := range assessments {
		if assessment.SeverityGrade > maxSeverity {
			maxSeverity = assessment.SeverityGrade
		}
	}

	if maxSeverity == 4 {
		return PriorityResult{Score: 100, Label: PriorityImmediate}
	}

	technicalScore := float64(maxSeverity) / 4 * 100

	riskScore := 50.0
	if matchesAny(componentName, criticalInfrastructure) {
		riskScore = 100
	}

	roiScore := 20.0
	if matchesAny(componentName, energyRelevant) {
		roiScore = 100
	}

	// Disruption is not component specific yet; a constant keeps the weight
	// slot reserved without skewing ranking.
	nuisanceScore := 50.0

	total := technicalScore*weights.Technical +
		riskScore*weights.Risk +
		roiScore*weights.ROI +
		nuisanceScore*weights.Nuisance

	return PriorityResult{Score: total, Label: priorityLabel(total)}
}

func priorityLabel(score float64) string {
	switch {
	case score >= 80:
		return PriorityHigh
	case score >= 50:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func matchesAny(name string, needles []string) bool {
	lowered := strings.ToLower(name)
	for _, needle := range needles {
		if strings.Contains(lowered, needle) {
			return true
		}
	}
	return false
}
