// Package submission turns a student's form into a stored problem record.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"solverpro/internal/metrics"
	"solverpro/internal/models"
	"solverpro/internal/pricing"
)

// Creator persists a new record.
type Creator interface {
	Create(ctx context.Context, record models.ProblemRecord) error
}

// AnalysisLookup resolves an analysis previously produced for the draft.
type AnalysisLookup interface {
	Cached(requestID string) (*models.AIAnalysis, bool)
	Forget(requestID string)
}

// Input is what the student submits.
type Input struct {
	StudentName     string
	Phone           string
	Image           string
	PackageQuantity int
	AnalysisID      string
}

type Service struct {
	store    Creator
	catalog  *pricing.Catalog
	analyses AnalysisLookup
	node     *snowflake.Node
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(store Creator, catalog *pricing.Catalog, analyses AnalysisLookup, node *snowflake.Node, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		analyses: analyses,
		node:     node,
		now:      time.Now,
		logger:   logger,
	}
}

// Submit validates the input and stores a new pending, unpaid record.
// Validation failures are returned as *models.ErrorResponse.
func (s *Service) Submit(ctx context.Context, in Input) (*models.ProblemRecord, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	pkg, err := s.catalog.Lookup(in.PackageQuantity)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownPackage) {
			return nil, &models.ErrorResponse{
				Code:    "unknown_package",
				Message: fmt.Sprintf("No package with quantity %d", in.PackageQuantity),
			}
		}
		return nil, err
	}

	record := models.ProblemRecord{
		ID:              s.node.Generate().String(),
		StudentName:     strings.TrimSpace(in.StudentName),
		Phone:           strings.TrimSpace(in.Phone),
		Image:           in.Image,
		PackageQuantity: pkg.Quantity,
		PackageDiscount: pkg.DiscountPercent,
		Analysis:        s.resolveAnalysis(in),
		Status:          models.StatusPending,
		Timestamp:       s.now().UTC().Round(0),
		Paid:            false,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store problem: %w", err)
	}
	if record.Analysis != nil {
		s.analyses.Forget(in.AnalysisID)
	}
	metrics.ObserveProblemCreated()

	s.logger.Info("Problem submitted",
		zap.String("problem_id", record.ID),
		zap.Int("package_quantity", record.PackageQuantity),
		zap.Bool("analysed", record.Analysis != nil))

	return &record, nil
}

func (s *Service) resolveAnalysis(in Input) *models.AIAnalysis {
	if in.AnalysisID == "" || s.analyses == nil {
		return nil
	}
	analysis, ok := s.analyses.Cached(in.AnalysisID)
	if !ok {
		s.logger.Warn("Analysis not found, storing problem without it", zap.String("request_id", in.AnalysisID))
		return nil
	}
	return analysis
}

func validate(in Input) error {
	req := models.SubmitProblemRequest{
		StudentName:     in.StudentName,
		Phone:           in.Phone,
		Image:           in.Image,
		PackageQuantity: in.PackageQuantity,
	}
	return req.Validate()
}
