package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// TrainingSvcFacade manages training assignments
type TrainingSvcFacade interface {
	AssignTraining(ctx context.Context, p domain.Principal, req dto.AssignTrainingRequest) (*domain.TrainingRecord, error)

	// CompleteTraining marks a record completed; only the trainee or a privileged role may.
	CompleteTraining(ctx context.Context, p domain.Principal, trainingID string) (*domain.TrainingRecord, error)
	ListTrainings(ctx context.Context, p domain.Principal, params dto.ListTrainingsParams) ([]domain.TrainingRecord, error)
}
