package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/core/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func activePrincipal(tenantID string, role domain.GlobalRole) domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), TenantID: tenantID, Role: role, IsActive: true}
}

type HazardServiceTestSuite struct {
	suite.Suite
	mockHazardRepo *MockHazardRepository
	mockSiteRepo   *MockSiteRepository
	mockUserRepo   *MockUserRepository
	publisher      *recordingPublisher
	clock          *fixedClock
	service        portssvc.HazardSvcFacade

	tenantID string
	officer  domain.Principal
	assignee domain.User
}

func (suite *HazardServiceTestSuite) SetupTest() {
	suite.mockHazardRepo = new(MockHazardRepository)
	suite.mockSiteRepo = new(MockSiteRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.publisher = &recordingPublisher{}
	suite.clock = &fixedClock{now: t0}
	suite.service = services.NewHazardService(suite.mockHazardRepo, suite.mockSiteRepo, suite.mockUserRepo,
		services.WithClock(suite.clock.Now),
		services.WithPublisher(suite.publisher))

	suite.tenantID = uuid.NewString()
	suite.officer = activePrincipal(suite.tenantID, domain.RoleSafetyOfficer)
	suite.assignee = domain.User{UserID: uuid.NewString(), TenantID: suite.tenantID, Role: domain.RoleEmployee, IsActive: true}
}

func (suite *HazardServiceTestSuite) openHazard(severity domain.HazardSeverity) *domain.HazardWithAssignment {
	return &domain.HazardWithAssignment{Hazard: domain.HazardReport{
		HazardID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		SiteID:    uuid.NewString(),
		Title:     "Open trench without barrier",
		Severity:  severity,
		Status:    domain.HazardOpen,
		IsActive:  true,
		Versioned: domain.Versioned{Version: 1},
	}}
}

func (suite *HazardServiceTestSuite) TestCreateHazard_Success() {
	ctx := context.Background()
	site := &domain.Site{SiteID: uuid.NewString(), TenantID: suite.tenantID, Name: "North Tower", IsActive: true}
	worker := activePrincipal(suite.tenantID, domain.RoleEmployee)
	req := dto.CreateHazardRequest{SiteID: site.SiteID, Title: "  Loose scaffolding  ", Severity: domain.HazardHigh}

	suite.mockSiteRepo.On("FindSiteByID", ctx, site.SiteID).Return(site, nil).Once()
	suite.mockHazardRepo.On("SaveHazard", ctx, mock.MatchedBy(func(h domain.HazardReport) bool {
		return h.TenantID == suite.tenantID && h.Status == domain.HazardOpen && h.Version == 1 && h.Title == "Loose scaffolding"
	})).Return(nil).Once()

	hw, err := suite.service.CreateHazard(ctx, worker, req)

	suite.Require().NoError(err)
	suite.Equal(domain.HazardOpen, hw.Hazard.Status)
	suite.Equal(worker.UserID, hw.Hazard.ReportedBy)
	suite.Nil(hw.Assignment)
	suite.Equal([]string{events.HazardCreated}, suite.publisher.types())
	suite.mockHazardRepo.AssertExpectations(suite.T())
}

func (suite *HazardServiceTestSuite) TestCreateHazard_UnknownSiteIsValidationError() {
	ctx := context.Background()
	siteID := uuid.NewString()
	suite.mockSiteRepo.On("FindSiteByID", ctx, siteID).Return(nil, apperrors.NewNotFoundError("site not found")).Once()

	hw, err := suite.service.CreateHazard(ctx, suite.officer, dto.CreateHazardRequest{SiteID: siteID, Title: "x", Severity: domain.HazardLow})

	suite.Require().Error(err)
	suite.Nil(hw)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockHazardRepo.AssertNotCalled(suite.T(), "SaveHazard", mock.Anything, mock.Anything)
}

func (suite *HazardServiceTestSuite) TestCreateHazard_CrossTenantDenied() {
	ctx := context.Background()
	site := &domain.Site{SiteID: uuid.NewString(), TenantID: uuid.NewString(), IsActive: true}
	suite.mockSiteRepo.On("FindSiteByID", ctx, site.SiteID).Return(site, nil).Once()

	hw, err := suite.service.CreateHazard(ctx, suite.officer, dto.CreateHazardRequest{SiteID: site.SiteID, Title: "x", Severity: domain.HazardLow})

	suite.Require().Error(err)
	suite.Nil(hw)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	appErr, ok := apperrors.As(err)
	suite.Require().True(ok)
	suite.Equal("cross_tenant", appErr.Details["reason"])
}

func (suite *HazardServiceTestSuite) TestAssignHazard_CriticalDueInOneDay() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardCritical)

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.assignee.UserID).Return(&suite.assignee, nil).Once()
	suite.mockHazardRepo.On("CreateAssignment", ctx,
		mock.MatchedBy(func(h domain.HazardReport) bool { return h.Status == domain.HazardAssigned }),
		mock.MatchedBy(func(a domain.HazardAssignment) bool { return a.DueDate.Equal(t0.Add(24 * time.Hour)) }),
		domain.HazardOpen, int64(1)).Return(nil).Once()

	result, err := suite.service.AssignHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.AssignHazardRequest{AssigneeID: suite.assignee.UserID})

	suite.Require().NoError(err)
	suite.Equal(domain.HazardAssigned, result.Hazard.Status)
	suite.Equal(int64(2), result.Hazard.Version)
	suite.Require().NotNil(result.Assignment)
	suite.Equal(t0.Add(24*time.Hour), result.Assignment.DueDate)
	suite.Equal(suite.assignee.UserID, result.Assignment.AssigneeID)
	suite.Equal(suite.tenantID, result.Assignment.TenantID)
	suite.Equal([]string{events.HazardAssigned}, suite.publisher.types())
	suite.mockHazardRepo.AssertExpectations(suite.T())
}

func (suite *HazardServiceTestSuite) TestAssignHazard_SecondAssignIsAlreadyAssigned() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardCritical)
	hw.Hazard.Status = domain.HazardAssigned
	hw.Assignment = &domain.HazardAssignment{AssignmentID: uuid.NewString(), AssigneeID: suite.assignee.UserID, DueDate: t0.Add(24 * time.Hour)}

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()

	result, err := suite.service.AssignHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.AssignHazardRequest{AssigneeID: uuid.NewString()})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrAlreadyAssigned)
	suite.mockHazardRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HazardServiceTestSuite) TestAssignHazard_AssigneeFromAnotherTenant() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardLow)
	outsider := domain.User{UserID: uuid.NewString(), TenantID: uuid.NewString(), IsActive: true}

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, outsider.UserID).Return(&outsider, nil).Once()

	result, err := suite.service.AssignHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.AssignHazardRequest{AssigneeID: outsider.UserID})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_OpenToInProgressWithAssignee() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardMedium)

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.assignee.UserID).Return(&suite.assignee, nil).Once()
	suite.mockHazardRepo.On("CreateAssignment", ctx, mock.Anything, mock.Anything, domain.HazardOpen, int64(1)).Return(nil).Once()

	result, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID,
		dto.TransitionHazardRequest{Status: domain.HazardInProgress, AssigneeID: suite.assignee.UserID})

	suite.Require().NoError(err)
	suite.Equal(domain.HazardInProgress, result.Hazard.Status)
	suite.Equal(domain.HazardInProgress, result.Assignment.Status)
	suite.Equal(t0.Add(7*24*time.Hour), result.Assignment.DueDate)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_OpenToAssignedWithAssignee() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardCritical)

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.assignee.UserID).Return(&suite.assignee, nil).Once()
	suite.mockHazardRepo.On("CreateAssignment", ctx,
		mock.MatchedBy(func(h domain.HazardReport) bool { return h.Status == domain.HazardAssigned }),
		mock.Anything, domain.HazardOpen, int64(1)).Return(nil).Once()

	result, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID,
		dto.TransitionHazardRequest{Status: domain.HazardAssigned, AssigneeID: suite.assignee.UserID})

	suite.Require().NoError(err)
	suite.Equal(domain.HazardAssigned, result.Hazard.Status)
	suite.Require().NotNil(result.Assignment)
	suite.Equal(suite.assignee.UserID, result.Assignment.AssigneeID)
	suite.Equal(t0.Add(24*time.Hour), result.Assignment.DueDate)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_OpenToResolvedWithAssigneeRejected() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardLow)
	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()

	result, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID,
		dto.TransitionHazardRequest{Status: domain.HazardResolved, AssigneeID: suite.assignee.UserID})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockHazardRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_OpenWithoutAssigneeRejected() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardMedium)
	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()

	result, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID,
		dto.TransitionHazardRequest{Status: domain.HazardInProgress})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_ResolveStampsResolvedAt() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardHigh)
	hw.Hazard.Status = domain.HazardInProgress
	hw.Hazard.Version = 3
	hw.Assignment = &domain.HazardAssignment{AssignmentID: uuid.NewString(), Status: domain.HazardInProgress}

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockHazardRepo.On("TransitionHazard", ctx, mock.AnythingOfType("domain.HazardReport"), domain.HazardInProgress, int64(3)).Return(nil).Once()

	result, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.TransitionHazardRequest{Status: domain.HazardResolved})

	suite.Require().NoError(err)
	suite.Equal(domain.HazardResolved, result.Hazard.Status)
	suite.Require().NotNil(result.Hazard.ResolvedAt)
	suite.Equal(t0, *result.Hazard.ResolvedAt)
	suite.Equal(domain.HazardResolved, result.Assignment.Status)
	suite.Equal(int64(4), result.Hazard.Version)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_ClosedIsTerminal() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardHigh)
	hw.Hazard.Status = domain.HazardClosed
	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()

	_, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.TransitionHazardRequest{Status: domain.HazardResolved})

	suite.ErrorIs(err, apperrors.ErrTerminalState)
}

func (suite *HazardServiceTestSuite) TestTransitionHazard_LostRaceIsConcurrentModification() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardHigh)
	hw.Hazard.Status = domain.HazardResolved
	hw.Assignment = &domain.HazardAssignment{AssignmentID: uuid.NewString()}

	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()
	suite.mockHazardRepo.On("TransitionHazard", ctx, mock.Anything, domain.HazardResolved, int64(1)).
		Return(apperrors.NewConcurrentModificationError("hazard", hw.Hazard.HazardID)).Once()

	_, err := suite.service.TransitionHazard(ctx, suite.officer, hw.Hazard.HazardID, dto.TransitionHazardRequest{Status: domain.HazardClosed})

	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.Empty(suite.publisher.published)
}

func (suite *HazardServiceTestSuite) TestIsOverdue() {
	hw := suite.openHazard(domain.HazardCritical)
	hw.Hazard.Status = domain.HazardAssigned
	hw.Assignment = &domain.HazardAssignment{DueDate: t0.Add(24 * time.Hour)}

	suite.False(suite.service.IsOverdue(*hw))
	suite.clock.Advance(25 * time.Hour)
	suite.True(suite.service.IsOverdue(*hw))

	hw.Hazard.Status = domain.HazardResolved
	suite.False(suite.service.IsOverdue(*hw))
}

func (suite *HazardServiceTestSuite) TestAddComment_EmptyBodyRejected() {
	ctx := context.Background()
	hw := suite.openHazard(domain.HazardLow)
	suite.mockHazardRepo.On("FindHazardByID", ctx, hw.Hazard.HazardID).Return(hw, nil).Once()

	comment, err := suite.service.AddComment(ctx, suite.officer, hw.Hazard.HazardID, dto.AddCommentRequest{Body: "   "})

	suite.Nil(comment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *HazardServiceTestSuite) TestGetHazard_RepoErrorIsInternal() {
	ctx := context.Background()
	hazardID := uuid.NewString()
	suite.mockHazardRepo.On("FindHazardByID", ctx, hazardID).Return(nil, assert.AnError).Once()

	hw, err := suite.service.GetHazard(ctx, suite.officer, hazardID)

	suite.Nil(hw)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.ErrorIs(err, assert.AnError)
}

func TestHazardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HazardServiceTestSuite))
}
