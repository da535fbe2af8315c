package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// TrainingReader defines read operations for training records
type TrainingReader interface {
	// FindTrainingByID retrieves one training record.
	FindTrainingByID(ctx context.Context, trainingID string) (*domain.TrainingRecord, error)

	// ListTrainings retrieves a tenant's training records, optionally for one user.
	ListTrainings(ctx context.Context, tenantID, userID string, page Page) ([]domain.TrainingRecord, error)

	// ListTrainingsDue retrieves training records due in [from, to).
	ListTrainingsDue(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrainingRecord, error)
}

// TrainingWriter defines write operations for training records
type TrainingWriter interface {
	// SaveTraining persists a new training assignment.
	SaveTraining(ctx context.Context, record domain.TrainingRecord) error

	// CompleteTraining marks an assigned record completed.
	CompleteTraining(ctx context.Context, trainingID, userID string, completedAt time.Time) error
}

// TrainingRepositoryFacade combines all training-related repository interfaces
type TrainingRepositoryFacade interface {
	TrainingReader
	TrainingWriter
}
