package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
)

// SignalStorage implements the SignalStorage interface for Badger
type SignalStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSignalStorage creates a new SignalStorage instance
func NewSignalStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SignalStorage {
	return &SignalStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SignalStorage) StoreSignal(ctx context.Context, signal *models.RiskSignal) error {
	if signal.ID == "" {
		return fmt.Errorf("signal ID is required")
	}

	if err := s.db.Store().Upsert(signal.ID, signal); err != nil {
		return fmt.Errorf("failed to store signal: %w", err)
	}
	return nil
}

func (s *SignalStorage) GetSignal(ctx context.Context, id string) (*models.RiskSignal, error) {
	var signal models.RiskSignal
	if err := s.db.Store().Get(id, &signal); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("signal not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get signal: %w", err)
	}
	return &signal, nil
}

func (s *SignalStorage) GetSignalsByAsset(ctx context.Context, assetID string) ([]*models.RiskSignal, error) {
	var signals []models.RiskSignal
	query := badgerhold.Where("AssetID").Eq(assetID).SortBy("Timestamp").Reverse()
	if err := s.db.Store().Find(&signals, query); err != nil {
		return nil, fmt.Errorf("failed to query signals by asset: %w", err)
	}

	result := make([]*models.RiskSignal, len(signals))
	for i := range signals {
		result[i] = &signals[i]
	}
	return result, nil
}

func (s *SignalStorage) GetRecentSignals(ctx context.Context, limit int) ([]*models.RiskSignal, error) {
	var signals []models.RiskSignal
	query := badgerhold.Where("ID").Ne("").SortBy("Timestamp").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&signals, query); err != nil {
		return nil, fmt.Errorf("failed to query recent signals: %w", err)
	}

	result := make([]*models.RiskSignal, len(signals))
	for i := range signals {
		result[i] = &signals[i]
	}
	return result, nil
}

func (s *SignalStorage) DeleteSignal(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.RiskSignal{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("signal not found: %s", id)
		}
		return fmt.Errorf("failed to delete signal: %w", err)
	}
	return nil
}

func (s *SignalStorage) CountSignals(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.RiskSignal{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count signals: %w", err)
	}
	return int(count), nil
}

func (s *SignalStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.RiskSignal{}, nil); err != nil {
		return fmt.Errorf("failed to clear signals: %w", err)
	}
	s.logger.Info().Msg("Cleared all signals")
	return nil
}
