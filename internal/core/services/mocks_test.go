package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/stretchr/testify/mock"
)

func ptrArg[T any](args mock.Arguments, i int) *T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*T)
}

func sliceArg[T any](args mock.Arguments, i int) []T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]T)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn func(ctx context.Context, userID string) (*domain.User, error)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return ptrArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return ptrArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.User, error) {
	args := m.Called(ctx, tenantID, page)
	return sliceArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) ListAllUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	return sliceArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.GlobalRole, updatedBy string, now time.Time) error {
	return m.Called(ctx, userID, role, updatedBy, now).Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	return m.Called(ctx, userID, deletedAt, deletedBy).Error(0)
}

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	return ptrArg[domain.Tenant](args, 0), args.Error(1)
}

func (m *MockTenantRepository) CreateTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.User) error {
	return m.Called(ctx, tenant, owner).Error(0)
}

func (m *MockTenantRepository) UpdateScoreWeights(ctx context.Context, tenantID string, weights *domain.ScoreWeights, updatedBy string, now time.Time) error {
	return m.Called(ctx, tenantID, weights, updatedBy, now).Error(0)
}

// --- Mock SiteRepository ---
type MockSiteRepository struct {
	mock.Mock
}

var _ portsrepo.SiteRepositoryFacade = (*MockSiteRepository)(nil)

func (m *MockSiteRepository) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	args := m.Called(ctx, siteID)
	return ptrArg[domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteRepository) ListSites(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.Site, error) {
	args := m.Called(ctx, tenantID, page)
	return sliceArg[domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteRepository) ListAllSites(ctx context.Context, tenantID string) ([]domain.Site, error) {
	args := m.Called(ctx, tenantID)
	return sliceArg[domain.Site](args, 0), args.Error(1)
}

func (m *MockSiteRepository) SaveSite(ctx context.Context, site domain.Site) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteRepository) UpdateSite(ctx context.Context, site domain.Site) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteRepository) DeactivateSite(ctx context.Context, siteID, userID string, now time.Time) error {
	return m.Called(ctx, siteID, userID, now).Error(0)
}

func (m *MockSiteRepository) SaveSiteRole(ctx context.Context, role domain.UserSiteRole) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockSiteRepository) FindSiteRoleByID(ctx context.Context, userSiteRoleID string) (*domain.UserSiteRole, error) {
	args := m.Called(ctx, userSiteRoleID)
	return ptrArg[domain.UserSiteRole](args, 0), args.Error(1)
}

func (m *MockSiteRepository) ListSiteRolesBySite(ctx context.Context, siteID string) ([]domain.UserSiteRole, error) {
	args := m.Called(ctx, siteID)
	return sliceArg[domain.UserSiteRole](args, 0), args.Error(1)
}

func (m *MockSiteRepository) ListSiteRolesByUser(ctx context.Context, userID string) ([]domain.UserSiteRole, error) {
	args := m.Called(ctx, userID)
	return sliceArg[domain.UserSiteRole](args, 0), args.Error(1)
}

func (m *MockSiteRepository) ListSiteRolesByTenant(ctx context.Context, tenantID string) ([]domain.UserSiteRole, error) {
	args := m.Called(ctx, tenantID)
	return sliceArg[domain.UserSiteRole](args, 0), args.Error(1)
}

func (m *MockSiteRepository) RevokeSiteRole(ctx context.Context, userSiteRoleID, userID string, now time.Time) error {
	return m.Called(ctx, userSiteRoleID, userID, now).Error(0)
}

// --- Mock HazardRepository ---
type MockHazardRepository struct {
	mock.Mock
}

var _ portsrepo.HazardRepositoryFacade = (*MockHazardRepository)(nil)

func (m *MockHazardRepository) FindHazardByID(ctx context.Context, hazardID string) (*domain.HazardWithAssignment, error) {
	args := m.Called(ctx, hazardID)
	return ptrArg[domain.HazardWithAssignment](args, 0), args.Error(1)
}

func (m *MockHazardRepository) ListHazards(ctx context.Context, tenantID string, filter domain.HazardFilter, limit int, nextToken *string) ([]domain.HazardWithAssignment, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	return sliceArg[domain.HazardWithAssignment](args, 0), ptrArg[string](args, 1), args.Error(2)
}

func (m *MockHazardRepository) ListOverdueHazards(ctx context.Context, tenantID string, now time.Time) ([]domain.HazardWithAssignment, error) {
	args := m.Called(ctx, tenantID, now)
	return sliceArg[domain.HazardWithAssignment](args, 0), args.Error(1)
}

func (m *MockHazardRepository) ListHazardFacts(ctx context.Context, tenantID string, from, to time.Time) ([]domain.HazardFact, error) {
	args := m.Called(ctx, tenantID, from, to)
	return sliceArg[domain.HazardFact](args, 0), args.Error(1)
}

func (m *MockHazardRepository) SaveHazard(ctx context.Context, hazard domain.HazardReport) error {
	return m.Called(ctx, hazard).Error(0)
}

func (m *MockHazardRepository) UpdateHazardDetails(ctx context.Context, hazard domain.HazardReport, expectedVersion int64) error {
	return m.Called(ctx, hazard, expectedVersion).Error(0)
}

func (m *MockHazardRepository) TransitionHazard(ctx context.Context, hazard domain.HazardReport, from domain.HazardStatus, expectedVersion int64) error {
	return m.Called(ctx, hazard, from, expectedVersion).Error(0)
}

func (m *MockHazardRepository) CreateAssignment(ctx context.Context, hazard domain.HazardReport, assignment domain.HazardAssignment, from domain.HazardStatus, expectedVersion int64) error {
	return m.Called(ctx, hazard, assignment, from, expectedVersion).Error(0)
}

func (m *MockHazardRepository) SaveComment(ctx context.Context, comment domain.HazardComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockHazardRepository) ListComments(ctx context.Context, hazardID string) ([]domain.HazardComment, error) {
	args := m.Called(ctx, hazardID)
	return sliceArg[domain.HazardComment](args, 0), args.Error(1)
}

// --- Mock IncidentRepository ---
type MockIncidentRepository struct {
	mock.Mock
}

var _ portsrepo.IncidentRepositoryFacade = (*MockIncidentRepository)(nil)

func (m *MockIncidentRepository) FindIncidentByID(ctx context.Context, incidentID string) (*domain.IncidentReport, error) {
	args := m.Called(ctx, incidentID)
	return ptrArg[domain.IncidentReport](args, 0), args.Error(1)
}

func (m *MockIncidentRepository) ListIncidents(ctx context.Context, tenantID string, filter domain.IncidentFilter, page portsrepo.Page) ([]domain.IncidentReport, error) {
	args := m.Called(ctx, tenantID, filter, page)
	return sliceArg[domain.IncidentReport](args, 0), args.Error(1)
}

func (m *MockIncidentRepository) ListIncidentsBetween(ctx context.Context, tenantID string, from, to time.Time) ([]domain.IncidentReport, error) {
	args := m.Called(ctx, tenantID, from, to)
	return sliceArg[domain.IncidentReport](args, 0), args.Error(1)
}

func (m *MockIncidentRepository) SaveIncident(ctx context.Context, incident domain.IncidentReport) error {
	return m.Called(ctx, incident).Error(0)
}

func (m *MockIncidentRepository) TransitionIncident(ctx context.Context, incident domain.IncidentReport, from domain.IncidentStatus, expectedVersion int64) error {
	return m.Called(ctx, incident, from, expectedVersion).Error(0)
}

// --- Mock PermitRepository ---
type MockPermitRepository struct {
	mock.Mock
}

var _ portsrepo.PermitRepositoryFacade = (*MockPermitRepository)(nil)

func (m *MockPermitRepository) FindPermitByID(ctx context.Context, permitID string) (*domain.PermitRequest, error) {
	args := m.Called(ctx, permitID)
	return ptrArg[domain.PermitRequest](args, 0), args.Error(1)
}

func (m *MockPermitRepository) ListPermits(ctx context.Context, tenantID string, filter domain.PermitFilter, page portsrepo.Page) ([]domain.PermitRequest, error) {
	args := m.Called(ctx, tenantID, filter, page)
	return sliceArg[domain.PermitRequest](args, 0), args.Error(1)
}

func (m *MockPermitRepository) SavePermit(ctx context.Context, permit domain.PermitRequest) error {
	return m.Called(ctx, permit).Error(0)
}

func (m *MockPermitRepository) TransitionPermit(ctx context.Context, permit domain.PermitRequest, from domain.PermitStatus, expectedVersion int64) error {
	return m.Called(ctx, permit, from, expectedVersion).Error(0)
}

// --- Mock TemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

var _ portsrepo.TemplateRepositoryFacade = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.InspectionTemplate, error) {
	args := m.Called(ctx, templateID)
	return ptrArg[domain.InspectionTemplate](args, 0), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.InspectionTemplate, error) {
	args := m.Called(ctx, tenantID, page)
	return sliceArg[domain.InspectionTemplate](args, 0), args.Error(1)
}

func (m *MockTemplateRepository) FindChecklistItems(ctx context.Context, templateID string, version int) ([]domain.ChecklistItem, error) {
	args := m.Called(ctx, templateID, version)
	return sliceArg[domain.ChecklistItem](args, 0), args.Error(1)
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem) error {
	return m.Called(ctx, template, items).Error(0)
}

func (m *MockTemplateRepository) SaveTemplateVersion(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem, previousVersion int) error {
	return m.Called(ctx, template, items, previousVersion).Error(0)
}

func (m *MockTemplateRepository) DeactivateTemplate(ctx context.Context, templateID, userID string, now time.Time) error {
	return m.Called(ctx, templateID, userID, now).Error(0)
}

// --- Mock InspectionRepository ---
type MockInspectionRepository struct {
	mock.Mock
}

var _ portsrepo.InspectionRepositoryFacade = (*MockInspectionRepository)(nil)

func (m *MockInspectionRepository) FindInspectionByID(ctx context.Context, inspectionID string) (*domain.Inspection, error) {
	args := m.Called(ctx, inspectionID)
	return ptrArg[domain.Inspection](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) ListInspections(ctx context.Context, tenantID string, filter domain.InspectionFilter, page portsrepo.Page) ([]domain.Inspection, error) {
	args := m.Called(ctx, tenantID, filter, page)
	return sliceArg[domain.Inspection](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) ListResponses(ctx context.Context, inspectionID string) ([]domain.InspectionResponse, error) {
	args := m.Called(ctx, inspectionID)
	return sliceArg[domain.InspectionResponse](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) ListCompletedInspections(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Inspection, error) {
	args := m.Called(ctx, tenantID, from, to)
	return sliceArg[domain.Inspection](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	return m.Called(ctx, inspection).Error(0)
}

func (m *MockInspectionRepository) RecordResponse(ctx context.Context, response domain.InspectionResponse, now time.Time) (*domain.Inspection, error) {
	args := m.Called(ctx, response, now)
	return ptrArg[domain.Inspection](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) CompleteInspection(ctx context.Context, inspection domain.Inspection, findings []domain.InspectionFinding, from domain.InspectionStatus, expectedVersion int64) error {
	return m.Called(ctx, inspection, findings, from, expectedVersion).Error(0)
}

func (m *MockInspectionRepository) TransitionInspection(ctx context.Context, inspection domain.Inspection, from domain.InspectionStatus, expectedVersion int64) error {
	return m.Called(ctx, inspection, from, expectedVersion).Error(0)
}

func (m *MockInspectionRepository) ListFindings(ctx context.Context, inspectionID string) ([]domain.InspectionFinding, error) {
	args := m.Called(ctx, inspectionID)
	return sliceArg[domain.InspectionFinding](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) ListTenantFindings(ctx context.Context, tenantID string, status domain.FindingStatus, page portsrepo.Page) ([]domain.InspectionFinding, error) {
	args := m.Called(ctx, tenantID, status, page)
	return sliceArg[domain.InspectionFinding](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) FindFindingByID(ctx context.Context, findingID string) (*domain.InspectionFinding, error) {
	args := m.Called(ctx, findingID)
	return ptrArg[domain.InspectionFinding](args, 0), args.Error(1)
}

func (m *MockInspectionRepository) UpdateFindingStatus(ctx context.Context, finding domain.InspectionFinding, from domain.FindingStatus) error {
	return m.Called(ctx, finding, from).Error(0)
}

// --- Mock TrainingRepository ---
type MockTrainingRepository struct {
	mock.Mock
}

var _ portsrepo.TrainingRepositoryFacade = (*MockTrainingRepository)(nil)

func (m *MockTrainingRepository) FindTrainingByID(ctx context.Context, trainingID string) (*domain.TrainingRecord, error) {
	args := m.Called(ctx, trainingID)
	return ptrArg[domain.TrainingRecord](args, 0), args.Error(1)
}

func (m *MockTrainingRepository) ListTrainings(ctx context.Context, tenantID, userID string, page portsrepo.Page) ([]domain.TrainingRecord, error) {
	args := m.Called(ctx, tenantID, userID, page)
	return sliceArg[domain.TrainingRecord](args, 0), args.Error(1)
}

func (m *MockTrainingRepository) ListTrainingsDue(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrainingRecord, error) {
	args := m.Called(ctx, tenantID, from, to)
	return sliceArg[domain.TrainingRecord](args, 0), args.Error(1)
}

func (m *MockTrainingRepository) SaveTraining(ctx context.Context, record domain.TrainingRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockTrainingRepository) CompleteTraining(ctx context.Context, trainingID, userID string, completedAt time.Time) error {
	return m.Called(ctx, trainingID, userID, completedAt).Error(0)
}

// --- Recording publisher ---
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	types := make([]string, 0, len(p.published))
	for _, e := range p.published {
		types = append(types, e.EventType)
	}
	return types
}

// fixedClock returns a settable clock for WithClock.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
