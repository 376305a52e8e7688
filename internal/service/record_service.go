package service

import (
	"context"

	"careervision/internal/metrics"
	"careervision/internal/model"
	"careervision/internal/repository"

	"go.uber.org/zap"
)

// RecordService fronts the record store for the session flow and the admin viewer
type RecordService struct {
	repo        repository.RecordRepo
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewRecordService creates a record service. broadcaster may be nil.
func NewRecordService(repo repository.RecordRepo, broadcaster Broadcaster, logger *zap.Logger) *RecordService {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &RecordService{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Append persists one record and notifies live admin viewers
func (s *RecordService) Append(ctx context.Context, record *model.StorageRecord) error {
	if err := s.repo.Append(ctx, record); err != nil {
		metrics.StorageErrors.WithLabelValues("append").Inc()
		return err
	}
	metrics.RecordsAppended.Inc()
	s.logger.Info("record saved",
		zap.String("recordId", record.ID),
		zap.String("riasecCode", record.RiasecCode))
	s.broadcaster.BroadcastToAdmins(EventRecordSaved, record)
	return nil
}

// List returns all records, oldest first
func (s *RecordService) List(ctx context.Context) ([]*model.StorageRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("list").Inc()
		return nil, err
	}
	return records, nil
}

// Clear removes every record
func (s *RecordService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		metrics.StorageErrors.WithLabelValues("clear").Inc()
		return err
	}
	s.logger.Warn("all records cleared")
	s.broadcaster.BroadcastToAdmins(EventRecordsCleared, map[string]interface{}{})
	return nil
}
