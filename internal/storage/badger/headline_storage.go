package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
)

// HeadlineStorage implements the HeadlineStorage interface for Badger
type HeadlineStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewHeadlineStorage creates a new HeadlineStorage instance
func NewHeadlineStorage(db *BadgerDB, logger arbor.ILogger) interfaces.HeadlineStorage {
	return &HeadlineStorage{
		db:     db,
		logger: logger,
	}
}

func (s *HeadlineStorage) StoreHeadline(ctx context.Context, headline *models.Headline) error {
	if headline.ID == "" {
		return fmt.Errorf("headline ID is required")
	}

	if err := s.db.Store().Upsert(headline.ID, headline); err != nil {
		return fmt.Errorf("failed to store headline: %w", err)
	}
	return nil
}

func (s *HeadlineStorage) StoreHeadlines(ctx context.Context, headlines []*models.Headline) error {
	for _, headline := range headlines {
		if err := s.StoreHeadline(ctx, headline); err != nil {
			return err
		}
	}
	return nil
}

func (s *HeadlineStorage) GetHeadline(ctx context.Context, id string) (*models.Headline, error) {
	var headline models.Headline
	if err := s.db.Store().Get(id, &headline); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("headline not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get headline: %w", err)
	}
	return &headline, nil
}

func (s *HeadlineStorage) GetHeadlinesByStatus(ctx context.Context, status models.TriageStatus) ([]*models.Headline, error) {
	var headlines []models.Headline
	query := badgerhold.Where("TriageStatus").Eq(status).SortBy("PublishedAt").Reverse()
	if err := s.db.Store().Find(&headlines, query); err != nil {
		return nil, fmt.Errorf("failed to query headlines by status: %w", err)
	}

	result := make([]*models.Headline, len(headlines))
	for i := range headlines {
		result[i] = &headlines[i]
	}
	return result, nil
}

func (s *HeadlineStorage) GetRecentHeadlines(ctx context.Context, limit int) ([]*models.Headline, error) {
	var headlines []models.Headline
	query := badgerhold.Where("ID").Ne("").SortBy("PublishedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&headlines, query); err != nil {
		return nil, fmt.Errorf("failed to query recent headlines: %w", err)
	}

	result := make([]*models.Headline, len(headlines))
	for i := range headlines {
		result[i] = &headlines[i]
	}
	return result, nil
}

func (s *HeadlineStorage) DeleteHeadline(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.Headline{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("headline not found: %s", id)
		}
		return fmt.Errorf("failed to delete headline: %w", err)
	}
	return nil
}

func (s *HeadlineStorage) CountHeadlines(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Headline{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count headlines: %w", err)
	}
	return int(count), nil
}

func (s *HeadlineStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.Headline{}, nil); err != nil {
		return fmt.Errorf("failed to clear headlines: %w", err)
	}
	s.logger.Info().Msg("Cleared all headlines")
	return nil
}
