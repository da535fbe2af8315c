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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PermitServiceTestSuite struct {
	suite.Suite
	mockPermitRepo *MockPermitRepository
	mockSiteRepo   *MockSiteRepository
	publisher      *recordingPublisher
	clock          *fixedClock
	service        portssvc.PermitSvcFacade

	tenantID string
	officer  domain.Principal
}

func (suite *PermitServiceTestSuite) SetupTest() {
	suite.mockPermitRepo = new(MockPermitRepository)
	suite.mockSiteRepo = new(MockSiteRepository)
	suite.publisher = &recordingPublisher{}
	suite.clock = &fixedClock{now: t0}
	suite.service = services.NewPermitService(suite.mockPermitRepo, suite.mockSiteRepo,
		services.WithClock(suite.clock.Now),
		services.WithPublisher(suite.publisher))
	suite.tenantID = uuid.NewString()
	suite.officer = activePrincipal(suite.tenantID, domain.RoleSafetyOfficer)
}

func (suite *PermitServiceTestSuite) permit(status domain.PermitStatus, end time.Time) *domain.PermitRequest {
	return &domain.PermitRequest{
		PermitID:   uuid.NewString(),
		TenantID:   suite.tenantID,
		SiteID:     uuid.NewString(),
		PermitType: "hot_work",
		Status:     status,
		StartDate:  end.Add(-48 * time.Hour),
		EndDate:    end,
		Versioned:  domain.Versioned{Version: 2},
	}
}

func (suite *PermitServiceTestSuite) TestGetPermit_ExpiryPersistedOnce() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitApproved, t0.Add(-time.Hour))

	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.MatchedBy(func(p domain.PermitRequest) bool {
		return p.Status == domain.PermitExpired
	}), domain.PermitApproved, int64(2)).Return(nil).Once()

	first, err := suite.service.GetPermit(ctx, suite.officer, stored.PermitID)
	suite.Require().NoError(err)
	suite.Equal(domain.PermitExpired, first.Status)
	suite.Equal(int64(3), first.Version)

	persisted := *stored
	persisted.Status = domain.PermitExpired
	persisted.Version = 3
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(&persisted, nil).Once()

	second, err := suite.service.GetPermit(ctx, suite.officer, stored.PermitID)
	suite.Require().NoError(err)
	suite.Equal(domain.PermitExpired, second.Status)

	suite.mockPermitRepo.AssertNumberOfCalls(suite.T(), "TransitionPermit", 1)
	suite.Equal([]string{events.PermitExpired}, suite.publisher.types())
	suite.Equal("system", suite.publisher.published[0].ActorID)
}

func (suite *PermitServiceTestSuite) TestGetPermit_LostExpiryRaceRereads() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitApproved, t0.Add(-time.Hour))
	persisted := *stored
	persisted.Status = domain.PermitExpired
	persisted.Version = 3

	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.Anything, domain.PermitApproved, int64(2)).
		Return(apperrors.NewConcurrentModificationError("permit", stored.PermitID)).Once()
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(&persisted, nil).Once()

	result, err := suite.service.GetPermit(ctx, suite.officer, stored.PermitID)

	suite.Require().NoError(err)
	suite.Equal(domain.PermitExpired, result.Status)
	suite.Equal(int64(3), result.Version)
	suite.Empty(suite.publisher.published)
}

func (suite *PermitServiceTestSuite) TestGetPermit_ApprovedWithinWindowUntouched() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitApproved, t0.Add(time.Hour))
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()

	result, err := suite.service.GetPermit(ctx, suite.officer, stored.PermitID)

	suite.Require().NoError(err)
	suite.Equal(domain.PermitApproved, result.Status)
	suite.mockPermitRepo.AssertNotCalled(suite.T(), "TransitionPermit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PermitServiceTestSuite) TestApprovePermit_Success() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitRequested, t0.Add(24*time.Hour))
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.MatchedBy(func(p domain.PermitRequest) bool {
		return p.Status == domain.PermitApproved && p.DecidedBy != nil && *p.DecidedBy == suite.officer.UserID
	}), domain.PermitRequested, int64(2)).Return(nil).Once()

	result, err := suite.service.ApprovePermit(ctx, suite.officer, stored.PermitID, dto.DecidePermitRequest{Notes: " fire watch posted "})

	suite.Require().NoError(err)
	suite.Equal(domain.PermitApproved, result.Status)
	suite.Equal("fire watch posted", result.DecisionNotes)
	suite.Equal([]string{events.PermitDecided}, suite.publisher.types())
}

func (suite *PermitServiceTestSuite) TestApprovePermit_WorkerWithoutSiteRoleDenied() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitRequested, t0.Add(24*time.Hour))
	worker := activePrincipal(suite.tenantID, domain.RoleEmployee)
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()

	result, err := suite.service.ApprovePermit(ctx, worker, stored.PermitID, dto.DecidePermitRequest{})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	appErr, _ := apperrors.As(err)
	suite.Equal("missing_site_scope", appErr.Details["reason"])
}

func (suite *PermitServiceTestSuite) TestApprovePermit_SiteManagerAllowed() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitRequested, t0.Add(24*time.Hour))
	manager := activePrincipal(suite.tenantID, domain.RoleEmployee)
	manager.SiteRoles = []domain.UserSiteRole{{
		SiteID: stored.SiteID, Role: domain.SiteRoleManager, StartDate: t0.Add(-time.Hour), IsActive: true,
	}}
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.Anything, domain.PermitRequested, int64(2)).Return(nil).Once()

	result, err := suite.service.ApprovePermit(ctx, manager, stored.PermitID, dto.DecidePermitRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.PermitApproved, result.Status)
}

func (suite *PermitServiceTestSuite) TestDenyPermit_AlreadyDeniedIsTerminal() {
	ctx := context.Background()
	stored := suite.permit(domain.PermitDenied, t0.Add(24*time.Hour))
	suite.mockPermitRepo.On("FindPermitByID", ctx, stored.PermitID).Return(stored, nil).Once()

	_, err := suite.service.DenyPermit(ctx, suite.officer, stored.PermitID, dto.DecidePermitRequest{})

	suite.ErrorIs(err, apperrors.ErrTerminalState)
}

func (suite *PermitServiceTestSuite) TestRequestPermit_EndBeforeStartRejected() {
	ctx := context.Background()
	site := &domain.Site{SiteID: uuid.NewString(), TenantID: suite.tenantID, IsActive: true}
	suite.mockSiteRepo.On("FindSiteByID", ctx, site.SiteID).Return(site, nil).Once()

	result, err := suite.service.RequestPermit(ctx, suite.officer, dto.CreatePermitRequest{
		SiteID: site.SiteID, PermitType: "confined_space", StartDate: t0.Add(2 * time.Hour), EndDate: t0.Add(time.Hour),
	})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PermitServiceTestSuite) TestListPermits_ExpiredIncludesLapsedApprovals() {
	ctx := context.Background()
	lapsed := suite.permit(domain.PermitApproved, t0.Add(-time.Hour))

	suite.mockPermitRepo.On("ListPermits", ctx, suite.tenantID, mock.MatchedBy(func(f domain.PermitFilter) bool {
		return f.Status == domain.PermitExpired && f.AsOf.Equal(t0)
	}), mock.Anything).Return([]domain.PermitRequest{*lapsed}, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.MatchedBy(func(p domain.PermitRequest) bool {
		return p.Status == domain.PermitExpired
	}), domain.PermitApproved, int64(2)).Return(nil).Once()

	permits, err := suite.service.ListPermits(ctx, suite.officer, dto.ListPermitsParams{Status: string(domain.PermitExpired)})

	suite.Require().NoError(err)
	suite.Require().Len(permits, 1)
	suite.Equal(lapsed.PermitID, permits[0].PermitID)
	suite.Equal(domain.PermitExpired, permits[0].Status)
}

func (suite *PermitServiceTestSuite) TestListPermits_ApprovedExcludesPermitsThatLapse() {
	ctx := context.Background()
	live := suite.permit(domain.PermitApproved, t0.Add(24*time.Hour))
	lapsed := suite.permit(domain.PermitApproved, t0.Add(-time.Hour))

	suite.mockPermitRepo.On("ListPermits", ctx, suite.tenantID, mock.MatchedBy(func(f domain.PermitFilter) bool {
		return f.Status == domain.PermitApproved && f.AsOf.Equal(t0)
	}), mock.Anything).Return([]domain.PermitRequest{*live, *lapsed}, nil).Once()
	suite.mockPermitRepo.On("TransitionPermit", ctx, mock.Anything, domain.PermitApproved, int64(2)).Return(nil).Once()

	permits, err := suite.service.ListPermits(ctx, suite.officer, dto.ListPermitsParams{Status: string(domain.PermitApproved)})

	suite.Require().NoError(err)
	suite.Require().Len(permits, 1)
	suite.Equal(live.PermitID, permits[0].PermitID)
	suite.Equal(domain.PermitApproved, permits[0].Status)
}

func TestPermitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PermitServiceTestSuite))
}
