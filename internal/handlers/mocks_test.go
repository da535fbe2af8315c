package handlers_test

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) ResolvePrincipal(ctx context.Context, userID string) (*domain.Principal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockAccessService) Capabilities(ctx context.Context, p domain.Principal) []access.Capability {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]access.Capability)
}

var _ portssvc.AccessSvc = (*MockAccessService)(nil)

// --- Mock HazardService ---
type MockHazardService struct {
	mock.Mock
}

func (m *MockHazardService) GetHazard(ctx context.Context, p domain.Principal, hazardID string) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p, hazardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) ListHazards(ctx context.Context, p domain.Principal, params dto.ListHazardsParams) ([]domain.HazardWithAssignment, *string, error) {
	args := m.Called(ctx, p, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.HazardWithAssignment), next, args.Error(2)
}
func (m *MockHazardService) ListOverdueHazards(ctx context.Context, p domain.Principal) ([]domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) IsOverdue(h domain.HazardWithAssignment) bool {
	args := m.Called(h)
	return args.Bool(0)
}
func (m *MockHazardService) CreateHazard(ctx context.Context, p domain.Principal, req dto.CreateHazardRequest) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) UpdateHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.UpdateHazardRequest) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p, hazardID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) AssignHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.AssignHazardRequest) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p, hazardID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) TransitionHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.TransitionHazardRequest) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, p, hazardID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardWithAssignment), args.Error(1)
}
func (m *MockHazardService) AddComment(ctx context.Context, p domain.Principal, hazardID string, req dto.AddCommentRequest) (*domain.HazardComment, error) {
	args := m.Called(ctx, p, hazardID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HazardComment), args.Error(1)
}
func (m *MockHazardService) ListComments(ctx context.Context, p domain.Principal, hazardID string) ([]domain.HazardComment, error) {
	args := m.Called(ctx, p, hazardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HazardComment), args.Error(1)
}

var _ portssvc.HazardSvcFacade = (*MockHazardService)(nil)

// --- Mock PermitService ---
type MockPermitService struct {
	mock.Mock
}

func (m *MockPermitService) GetPermit(ctx context.Context, p domain.Principal, permitID string) (*domain.PermitRequest, error) {
	args := m.Called(ctx, p, permitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitRequest), args.Error(1)
}
func (m *MockPermitService) ListPermits(ctx context.Context, p domain.Principal, params dto.ListPermitsParams) ([]domain.PermitRequest, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PermitRequest), args.Error(1)
}
func (m *MockPermitService) RequestPermit(ctx context.Context, p domain.Principal, req dto.CreatePermitRequest) (*domain.PermitRequest, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitRequest), args.Error(1)
}
func (m *MockPermitService) ApprovePermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error) {
	args := m.Called(ctx, p, permitID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitRequest), args.Error(1)
}
func (m *MockPermitService) DenyPermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error) {
	args := m.Called(ctx, p, permitID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitRequest), args.Error(1)
}

var _ portssvc.PermitSvcFacade = (*MockPermitService)(nil)

// --- Mock TemplateService ---
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) CreateTemplate(ctx context.Context, p domain.Principal, req dto.CreateTemplateRequest) (*domain.InspectionTemplate, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionTemplate), args.Error(1)
}
func (m *MockTemplateService) GetTemplate(ctx context.Context, p domain.Principal, templateID string) (*domain.InspectionTemplate, error) {
	args := m.Called(ctx, p, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionTemplate), args.Error(1)
}
func (m *MockTemplateService) ListTemplates(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.InspectionTemplate, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InspectionTemplate), args.Error(1)
}
func (m *MockTemplateService) UpdateTemplate(ctx context.Context, p domain.Principal, templateID string, req dto.UpdateTemplateRequest) (*domain.InspectionTemplate, error) {
	args := m.Called(ctx, p, templateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionTemplate), args.Error(1)
}
func (m *MockTemplateService) DeleteTemplate(ctx context.Context, p domain.Principal, templateID string) error {
	args := m.Called(ctx, p, templateID)
	return args.Error(0)
}

var _ portssvc.TemplateSvcFacade = (*MockTemplateService)(nil)

// --- Mock InspectionService ---
type MockInspectionService struct {
	mock.Mock
}

func (m *MockInspectionService) Instantiate(ctx context.Context, p domain.Principal, templateID string, req dto.InstantiateRequest) (*domain.Inspection, error) {
	args := m.Called(ctx, p, templateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionService) RecordResponse(ctx context.Context, p domain.Principal, inspectionID string, req dto.RecordResponseRequest) (*domain.InspectionResponse, *domain.Inspection, error) {
	args := m.Called(ctx, p, inspectionID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.InspectionResponse), args.Get(1).(*domain.Inspection), args.Error(2)
}
func (m *MockInspectionService) Complete(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionResult, error) {
	args := m.Called(ctx, p, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionResult), args.Error(1)
}
func (m *MockInspectionService) Cancel(ctx context.Context, p domain.Principal, inspectionID string) (*domain.Inspection, error) {
	args := m.Called(ctx, p, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionService) GetInspection(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionDetail, error) {
	args := m.Called(ctx, p, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionDetail), args.Error(1)
}
func (m *MockInspectionService) ListInspections(ctx context.Context, p domain.Principal, params dto.ListInspectionsParams) ([]domain.Inspection, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inspection), args.Error(1)
}
func (m *MockInspectionService) ListFindings(ctx context.Context, p domain.Principal, params dto.ListFindingsParams) ([]domain.InspectionFinding, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InspectionFinding), args.Error(1)
}
func (m *MockInspectionService) UpdateFinding(ctx context.Context, p domain.Principal, findingID string, req dto.UpdateFindingRequest) (*domain.InspectionFinding, error) {
	args := m.Called(ctx, p, findingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionFinding), args.Error(1)
}

var _ portssvc.InspectionSvcFacade = (*MockInspectionService)(nil)

// --- Mock SafetyScoreService ---
type MockSafetyScoreService struct {
	mock.Mock
}

func (m *MockSafetyScoreService) GetSafetyScores(ctx context.Context, p domain.Principal, params dto.SafetyScoreParams) (*domain.SafetyScoreReport, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafetyScoreReport), args.Error(1)
}

var _ portssvc.SafetyScoreSvc = (*MockSafetyScoreService)(nil)

// --- Mock IncidentService ---
type MockIncidentService struct {
	mock.Mock
}

func (m *MockIncidentService) CreateIncident(ctx context.Context, p domain.Principal, req dto.CreateIncidentRequest) (*domain.IncidentReport, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncidentReport), args.Error(1)
}
func (m *MockIncidentService) GetIncident(ctx context.Context, p domain.Principal, incidentID string) (*domain.IncidentReport, error) {
	args := m.Called(ctx, p, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncidentReport), args.Error(1)
}
func (m *MockIncidentService) ListIncidents(ctx context.Context, p domain.Principal, params dto.ListIncidentsParams) ([]domain.IncidentReport, error) {
	args := m.Called(ctx, p, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncidentReport), args.Error(1)
}
func (m *MockIncidentService) TransitionIncident(ctx context.Context, p domain.Principal, incidentID string, req dto.TransitionIncidentRequest) (*domain.IncidentReport, error) {
	args := m.Called(ctx, p, incidentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncidentReport), args.Error(1)
}

var _ portssvc.IncidentSvcFacade = (*MockIncidentService)(nil)
