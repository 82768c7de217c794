package scoring

import "math"

// GradeWeights blends the four investment grade pillars. The blend and its
// letter thresholds are deliberately separate from the composite health
// score; the two schemes must never be conflated.
type GradeWeights struct {
	Repairs    float64 `yaml:"repairs"`
	Finance    float64 `yaml:"finance"`
	Energy     float64 `yaml:"energy"`
	Governance float64 `yaml:"governance"`
}

// DefaultGradeWeights returns the production blend.
func DefaultGradeWeights() GradeWeights {
	return GradeWeights{
		Repairs:    0.4,
		Finance:    0.3,
		Energy:     0.15,
		Governance: 0.15,
	}
}

// PillarScores are the four investment grade inputs, each 0..100.
type PillarScores struct {
	Repairs    int `json:"repairs"`
	Finance    int `json:"finance"`
	Energy     int `json:"energy"`
	Governance int `json:"governance"`
}

// InvestmentGrade is the letter-graded weighted blend.
type InvestmentGrade struct {
	Score   int          `json:"score"`
	Grade   string       `json:"grade"`
	Pillars PillarScores `json:"pillars"`
}

// GradeFromPillars blends the pillars and assigns the letter grade.
func GradeFromPillars(pillars PillarScores, weights GradeWeights) InvestmentGrade {
	blended := float64(pillars.Repairs)*weights.Repairs +
		float64(pillars.Finance)*weights.Finance +
		float64(pillars.Energy)*weights.Energy +
		float64(pillars.Governance)*weights.Governance
	score := int(math.Round(blended))

	return InvestmentGrade{
		Score:   score,
		Grade:   letterGrade(score),
		Pillars: pillars,
	}
}

func letterGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "E"
	}
}
