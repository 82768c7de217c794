package application

import (
	"context"
	"errors"
	"log"
	"time"

	portfolio "taloyhtio-cloud/internal/portfolio/domain"
	scoring "taloyhtio-cloud/internal/scoring/domain"
)

// ObservationSource lists open technical observations.
type ObservationSource interface {
	ListOpen(ctx context.Context, companyID string) ([]portfolio.Observation, error)
}

// SnapshotSource loads the latest financial snapshot.
type SnapshotSource interface {
	Latest(ctx context.Context, companyID string) (*portfolio.FinancialSnapshot, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ScoringService computes and persists composite health scores and derives
// the investment grade.
type ScoringService struct {
	observations   ObservationSource
	snapshots      SnapshotSource
	scores         scoring.ScoreRepository
	admin          scoring.AdminScorer
	gradeWeights   scoring.GradeWeights
	energyBaseline int
	clock          Clock
	logger         *log.Logger
}

// NewScoringService constructs the service.
func NewScoringService(
	observations ObservationSource,
	snapshots SnapshotSource,
	scores scoring.ScoreRepository,
	admin scoring.AdminScorer,
	gradeWeights scoring.GradeWeights,
	energyBaseline int,
	clock Clock,
	logger *log.Logger,
) (*ScoringService, error) {
	if observations == nil {
		return nil, errors.New("scoring service: nil observation source")
	}
	if snapshots == nil {
		return nil, errors.New("scoring service: nil snapshot source")
	}
	if scores == nil {
		return nil, errors.New("scoring service: nil score repository")
	}
	if admin == nil {
		admin = scoring.ConstantAdminScore(scoring.DefaultAdminScore)
	}
	if gradeWeights == (scoring.GradeWeights{}) {
		gradeWeights = scoring.DefaultGradeWeights()
	}
	if energyBaseline <= 0 {
		energyBaseline = 70
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ScoringService{
		observations:   observations,
		snapshots:      snapshots,
		scores:         scores,
		admin:          admin,
		gradeWeights:   gradeWeights,
		energyBaseline: energyBaseline,
		clock:          clock,
		logger:         logger,
	}, nil
}

// RunScoring computes the composite score from current portfolio facts and
// persists it. Persistence appends the history row and refreshes the live
// summary in one transaction.
func (s *ScoringService) RunScoring(ctx context.Context, companyID string) (*scoring.CompositeScore, error) {
	score, _, err := s.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.scores.SaveScore(ctx, *score); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Printf("composite score saved: company=%s total=%d technical=%d financial=%d admin=%d",
			companyID, score.Total, score.Technical, score.Financial, score.Admin)
	}
	return score, nil
}

// Grade derives the investment grade from the same portfolio facts. The
// grade uses its own weighted blend and is never the composite mean.
func (s *ScoringService) Grade(ctx context.Context, companyID string) (*scoring.InvestmentGrade, error) {
	score, snapshot, err := s.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}

	grade := scoring.GradeFromPillars(scoring.PillarScores{
		Repairs:    score.Technical,
		Finance:    score.Financial,
		Energy:     s.energyScore(snapshot),
		Governance: score.Admin,
	}, s.gradeWeights)
	return &grade, nil
}

// Latest returns the live summary score.
func (s *ScoringService) Latest(ctx context.Context, companyID string) (*scoring.CompositeScore, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	return s.scores.Latest(ctx, companyID)
}

// History returns the newest score entries, most recent first.
func (s *ScoringService) History(ctx context.Context, companyID string, limit int) ([]scoring.CompositeScore, error) {
	if companyID == "" {
		return nil, portfolio.ErrEmptyCompanyID
	}
	if limit <= 0 {
		limit = 24
	}
	return s.scores.History(ctx, companyID, limit)
}

func (s *ScoringService) compute(ctx context.Context, companyID string) (*scoring.CompositeScore, *portfolio.FinancialSnapshot, error) {
	if companyID == "" {
		return nil, nil, portfolio.ErrEmptyCompanyID
	}

	observations, err := s.observations.ListOpen(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := s.snapshots.Latest(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot == nil {
		return nil, nil, portfolio.ErrNotFound
	}

	technical := scoring.TechnicalScore(observations)
	financial, err := scoring.FinancialScore(*snapshot)
	if err != nil {
		return nil, nil, err
	}
	admin := s.admin.AdminScore(companyID)

	score := scoring.Aggregate(companyID, technical, financial, admin, s.clock.Now())
	return &score, snapshot, nil
}

// energyScore converts the snapshot energy cost difference into a pillar
// score. The difference is percentage points against the reference building
// stock; zero means at reference level.
func (s *ScoringService) energyScore(snapshot *portfolio.FinancialSnapshot) int {
	score := s.energyBaseline - int(snapshot.EnergyCostDiff)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
