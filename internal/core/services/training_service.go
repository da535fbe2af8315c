package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/google/uuid"
)

type trainingService struct {
	BaseService
	trainingRepo portsrepo.TrainingRepositoryFacade
	userRepo     portsrepo.UserReader
}

// NewTrainingService creates a new training service
func NewTrainingService(trainingRepo portsrepo.TrainingRepositoryFacade, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.TrainingSvcFacade {
	return &trainingService{
		BaseService:  newBaseService(options...),
		trainingRepo: trainingRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.TrainingSvcFacade = (*trainingService)(nil)

func (s *trainingService) AssignTraining(ctx context.Context, p domain.Principal, req dto.AssignTrainingRequest) (*domain.TrainingRecord, error) {
	if err := s.Authorize(ctx, p, access.ActionCreate, access.Resource{Kind: access.KindTraining, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	trainee, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "user not found"), "Failed to load trainee", slog.String("user_id", req.UserID))
	}
	if trainee.TenantID != p.TenantID || !trainee.IsActive {
		return nil, apperrors.NewValidationFailedError("user not found")
	}

	now := s.Now()
	record := domain.TrainingRecord{
		TrainingID:  uuid.NewString(),
		TenantID:    p.TenantID,
		UserID:      trainee.UserID,
		CourseName:  strings.TrimSpace(req.CourseName),
		Status:      domain.TrainingAssigned,
		AssignedAt:  now,
		DueDate:     req.DueDate.UTC(),
		AuditFields: domain.NewAuditFields(p.UserID, now),
	}
	if err := s.trainingRepo.SaveTraining(ctx, record); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save training record", slog.String("user_id", trainee.UserID))
	}

	s.publish(ctx, s.event(events.TrainingAssigned, p, record.TenantID, record.TrainingID, map[string]any{
		"user_id":  record.UserID,
		"course":   record.CourseName,
		"due_date": record.DueDate,
	}))
	return &record, nil
}

func (s *trainingService) CompleteTraining(ctx context.Context, p domain.Principal, trainingID string) (*domain.TrainingRecord, error) {
	record, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load training record", slog.String("training_id", trainingID))
	}
	res := access.Resource{Kind: access.KindTraining, ID: record.TrainingID, TenantID: record.TenantID}
	if err := s.Authorize(ctx, p, access.ActionUpdate, res); err != nil {
		return nil, err
	}
	if record.UserID != p.UserID && !isTenantManager(p) {
		return nil, apperrors.NewUnauthorizedError(string(access.ReasonInsufficientRole), "only the trainee or a supervisor can complete a training")
	}
	if record.Status == domain.TrainingCompleted {
		return record, nil
	}

	now := s.Now()
	if err := s.trainingRepo.CompleteTraining(ctx, trainingID, p.UserID, now); err != nil {
		return nil, s.repoError(ctx, err, "Failed to complete training", slog.String("training_id", trainingID))
	}
	record.Status = domain.TrainingCompleted
	record.CompletedAt = &now
	record.Touch(p.UserID, now)
	return record, nil
}

func (s *trainingService) ListTrainings(ctx context.Context, p domain.Principal, params dto.ListTrainingsParams) ([]domain.TrainingRecord, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindTraining, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	records, err := s.trainingRepo.ListTrainings(ctx, p.TenantID, params.UserID, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list training records", slog.String("tenant_id", p.TenantID))
	}
	return records, nil
}

// isTenantManager reports whether p holds a tenant-wide privileged global role.
func isTenantManager(p domain.Principal) bool {
	switch p.Role {
	case domain.RoleSuperAdmin, domain.RoleSafetyOfficer, domain.RoleSupervisor:
		return true
	}
	return false
}
