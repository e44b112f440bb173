package interfaces

import (
	"context"

	"github.com/ternarybob/sentinel/internal/models"
)

// HeadlineStorage - interface for headline persistence
type HeadlineStorage interface {
	StoreHeadline(ctx context.Context, headline *models.Headline) error
	StoreHeadlines(ctx context.Context, headlines []*models.Headline) error
	GetHeadline(ctx context.Context, id string) (*models.Headline, error)
	GetHeadlinesByStatus(ctx context.Context, status models.TriageStatus) ([]*models.Headline, error)
	GetRecentHeadlines(ctx context.Context, limit int) ([]*models.Headline, error)
	DeleteHeadline(ctx context.Context, id string) error
	CountHeadlines(ctx context.Context) (int, error)
	ClearAll(ctx context.Context) error
}

// SignalStorage - interface for risk signal persistence
type SignalStorage interface {
	StoreSignal(ctx context.Context, signal *models.RiskSignal) error
	GetSignal(ctx context.Context, id string) (*models.RiskSignal, error)
	GetSignalsByAsset(ctx context.Context, assetID string) ([]*models.RiskSignal, error)
	GetRecentSignals(ctx context.Context, limit int) ([]*models.RiskSignal, error)
	DeleteSignal(ctx context.Context, id string) error
	CountSignals(ctx context.Context) (int, error)
	ClearAll(ctx context.Context) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	HeadlineStorage() HeadlineStorage
	SignalStorage() SignalStorage
	KeyValueStorage() KeyValueStorage
	Close() error
}
