package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type storeClearer interface {
	ClearAll(ctx context.Context) error
}

// MaintenanceService runs destructive store-wide operations.
type MaintenanceService struct {
	reader *StoreReader
	repo   storeClearer
	drafts draftStore
	logger *zap.Logger
}

// NewMaintenanceService constructs the service. drafts may be nil.
func NewMaintenanceService(reader *StoreReader, repo storeClearer, drafts draftStore, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{reader: reader, repo: repo, drafts: drafts, logger: logger}
}

// ClearAll deletes every student and attendance row, then drops all cached
// reads and drafts. confirm must be true.
func (s *MaintenanceService) ClearAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return appErrors.Clone(appErrors.ErrValidation, "confirm must be true to clear all data")
	}
	if err := s.repo.ClearAll(ctx); err != nil {
		return storeError(err, "failed to clear data")
	}
	s.reader.Invalidate(ctx, cacheKeyStudents, cacheKeyHistory, cacheKeyRecaps)
	if s.drafts != nil {
		if err := s.drafts.DeleteAll(ctx); err != nil {
			s.logger.Warn("failed to delete drafts after clear", zap.Error(err))
		}
	}
	s.logger.Warn("all student and attendance data cleared")
	return nil
}
