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
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type IncidentServiceTestSuite struct {
	suite.Suite
	mockIncidentRepo *MockIncidentRepository
	mockSiteRepo     *MockSiteRepository
	service          portssvc.IncidentSvcFacade

	tenantID string
	officer  domain.Principal
}

func (suite *IncidentServiceTestSuite) SetupTest() {
	suite.mockIncidentRepo = new(MockIncidentRepository)
	suite.mockSiteRepo = new(MockSiteRepository)
	clock := &fixedClock{now: t0}
	suite.service = services.NewIncidentService(suite.mockIncidentRepo, suite.mockSiteRepo, services.WithClock(clock.Now))
	suite.tenantID = uuid.NewString()
	suite.officer = activePrincipal(suite.tenantID, domain.RoleSafetyOfficer)
}

func (suite *IncidentServiceTestSuite) investigating() *domain.IncidentReport {
	return &domain.IncidentReport{
		IncidentID: uuid.NewString(),
		TenantID:   suite.tenantID,
		SiteID:     uuid.NewString(),
		Title:      "Fall from ladder",
		Severity:   domain.IncidentMajor,
		Status:     domain.IncidentInvestigating,
		Versioned:  domain.Versioned{Version: 2},
	}
}

func (suite *IncidentServiceTestSuite) TestCreateIncident_Success() {
	ctx := context.Background()
	site := &domain.Site{SiteID: uuid.NewString(), TenantID: suite.tenantID, IsActive: true}
	req := dto.CreateIncidentRequest{
		SiteID:     site.SiteID,
		Title:      "Dropped load",
		Severity:   domain.IncidentModerate,
		OccurredAt: t0.Add(-2 * time.Hour),
	}

	suite.mockSiteRepo.On("FindSiteByID", ctx, site.SiteID).Return(site, nil).Once()
	suite.mockIncidentRepo.On("SaveIncident", ctx, mock.MatchedBy(func(i domain.IncidentReport) bool {
		return i.Status == domain.IncidentReported && i.InvolvedUserIDs != nil && i.Version == 1
	})).Return(nil).Once()

	incident, err := suite.service.CreateIncident(ctx, suite.officer, req)

	suite.Require().NoError(err)
	suite.Equal(domain.IncidentReported, incident.Status)
	suite.Empty(incident.InvolvedUserIDs)
	suite.mockIncidentRepo.AssertExpectations(suite.T())
}

func (suite *IncidentServiceTestSuite) TestCreateIncident_FutureOccurrenceRejected() {
	ctx := context.Background()
	site := &domain.Site{SiteID: uuid.NewString(), TenantID: suite.tenantID, IsActive: true}
	suite.mockSiteRepo.On("FindSiteByID", ctx, site.SiteID).Return(site, nil).Once()

	incident, err := suite.service.CreateIncident(ctx, suite.officer, dto.CreateIncidentRequest{
		SiteID: site.SiteID, Title: "x", Severity: domain.IncidentMinor, OccurredAt: t0.Add(time.Hour),
	})

	suite.Nil(incident)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IncidentServiceTestSuite) TestResolve_MissingFieldsListed() {
	ctx := context.Background()
	incident := suite.investigating()
	suite.mockIncidentRepo.On("FindIncidentByID", ctx, incident.IncidentID).Return(incident, nil).Once()

	result, err := suite.service.TransitionIncident(ctx, suite.officer, incident.IncidentID, dto.TransitionIncidentRequest{
		Status:    domain.IncidentResolved,
		RootCause: "Ladder not secured",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	appErr, ok := apperrors.As(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeMissingFields, appErr.Code)
	suite.Equal([]string{"correctiveActions", "preventativeMeasures"}, appErr.Details["missingFields"])
	suite.mockIncidentRepo.AssertNotCalled(suite.T(), "TransitionIncident", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IncidentServiceTestSuite) TestResolve_WithAllFields() {
	ctx := context.Background()
	incident := suite.investigating()
	suite.mockIncidentRepo.On("FindIncidentByID", ctx, incident.IncidentID).Return(incident, nil).Once()
	suite.mockIncidentRepo.On("TransitionIncident", ctx, mock.MatchedBy(func(i domain.IncidentReport) bool {
		return i.Status == domain.IncidentResolved && i.RootCause == "Ladder not secured"
	}), domain.IncidentInvestigating, int64(2)).Return(nil).Once()

	result, err := suite.service.TransitionIncident(ctx, suite.officer, incident.IncidentID, dto.TransitionIncidentRequest{
		Status:               domain.IncidentResolved,
		RootCause:            "Ladder not secured",
		CorrectiveActions:    "Ladder tied off",
		PreventativeMeasures: "Toolbox talk on ladder use",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.IncidentResolved, result.Status)
	suite.Equal(t0, *result.ResolvedAt)
	suite.Equal(int64(3), result.Version)
	suite.mockIncidentRepo.AssertExpectations(suite.T())
}

func (suite *IncidentServiceTestSuite) TestResolveFromReported_InvalidTransition() {
	ctx := context.Background()
	incident := suite.investigating()
	incident.Status = domain.IncidentReported
	suite.mockIncidentRepo.On("FindIncidentByID", ctx, incident.IncidentID).Return(incident, nil).Once()

	_, err := suite.service.TransitionIncident(ctx, suite.officer, incident.IncidentID, dto.TransitionIncidentRequest{
		Status: domain.IncidentResolved, RootCause: "a", CorrectiveActions: "b", PreventativeMeasures: "c",
	})

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *IncidentServiceTestSuite) TestGetIncident_InactivePrincipalDenied() {
	ctx := context.Background()
	incident := suite.investigating()
	inactive := suite.officer
	inactive.IsActive = false
	suite.mockIncidentRepo.On("FindIncidentByID", ctx, incident.IncidentID).Return(incident, nil).Once()

	result, err := suite.service.GetIncident(ctx, inactive, incident.IncidentID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestIncidentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IncidentServiceTestSuite))
}
