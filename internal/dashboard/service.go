package dashboard

import (
	"context"

	"go.uber.org/zap"

	"solverpro/internal/models"
	"solverpro/internal/store"
)

// Store is the subset of the problem store the dashboard needs.
type Store interface {
	Snapshot() []models.ProblemRecord
	Get(id string) (models.ProblemRecord, bool)
	Update(ctx context.Context, id string, mutator store.Mutator) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(s Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// View returns the filtered problems together with stats over the whole
// snapshot.
func (s *Service) View(statusFilter, searchText string) models.DashboardResponse {
	snapshot := s.store.Snapshot()
	return models.DashboardResponse{
		Problems: ApplyFilter(snapshot, statusFilter, searchText),
		Stats:    ComputeStats(snapshot),
	}
}

func (s *Service) Stats() models.DashboardStats {
	return ComputeStats(s.store.Snapshot())
}

func (s *Service) SetStatus(ctx context.Context, id string, status models.ProblemStatus) (bool, error) {
	found, err := s.store.Update(ctx, id, func(p models.ProblemRecord) models.ProblemRecord {
		p.Status = status
		return p
	})
	if found {
		s.logger.Info("Problem status updated", zap.String("problem_id", id), zap.String("status", string(status)))
	}
	return found, err
}

func (s *Service) TogglePaid(ctx context.Context, id string) (bool, error) {
	found, err := s.store.Update(ctx, id, func(p models.ProblemRecord) models.ProblemRecord {
		p.Paid = !p.Paid
		return p
	})
	if found {
		s.logger.Info("Problem payment toggled", zap.String("problem_id", id))
	}
	return found, err
}

func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	found, err := s.store.Delete(ctx, id)
	if found {
		s.logger.Info("Problem deleted", zap.String("problem_id", id))
	}
	return found, err
}

// Contact returns the messaging link for a record's phone.
func (s *Service) Contact(id string) (string, bool) {
	record, ok := s.store.Get(id)
	if !ok {
		return "", false
	}
	return ContactLink(record.Phone), true
}
