package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/handlers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PermitHandlerTestSuite struct {
	handlerSuite
	mockPermitService *MockPermitService
}

func (s *PermitHandlerTestSuite) SetupTest() {
	s.setupRouter()
	s.mockPermitService = new(MockPermitService)
	handlers.RegisterPermitRoutes(s.v1, s.mockPermitService)
}

func (s *PermitHandlerTestSuite) TearDownTest() {
	s.mockPermitService.AssertExpectations(s.T())
}

func testPermit(status domain.PermitStatus) *domain.PermitRequest {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.PermitRequest{
		PermitID:    "permit-1",
		TenantID:    testTenantID,
		SiteID:      "site-1",
		PermitType:  "hot_work",
		Status:      status,
		StartDate:   start,
		EndDate:     start.Add(48 * time.Hour),
		RequestedBy: "user-2",
		IsActive:    true,
	}
}

func (s *PermitHandlerTestSuite) TestApprovePermit_EmptyBody() {
	approved := testPermit(domain.PermitApproved)
	decider := testUserID
	approved.DecidedBy = &decider

	s.mockPermitService.On("ApprovePermit", mock.Anything, s.principal, "permit-1", dto.DecidePermitRequest{}).
		Return(approved, nil).Once()

	rr := s.authed(http.MethodPost, "/api/v1/permits/permit-1/approve", nil)

	s.Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp domain.PermitRequest
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(domain.PermitApproved, resp.Status)
	s.Require().NotNil(resp.DecidedBy)
	s.Equal(testUserID, *resp.DecidedBy)
}

func (s *PermitHandlerTestSuite) TestDenyPermit_WithNotes() {
	req := dto.DecidePermitRequest{Notes: "Fire watch not arranged"}
	denied := testPermit(domain.PermitDenied)
	denied.DecisionNotes = req.Notes

	s.mockPermitService.On("DenyPermit", mock.Anything, s.principal, "permit-1", req).Return(denied, nil).Once()

	rr := s.authed(http.MethodPost, "/api/v1/permits/permit-1/deny", req)

	s.Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp domain.PermitRequest
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(domain.PermitDenied, resp.Status)
	s.Equal("Fire watch not arranged", resp.DecisionNotes)
}

func (s *PermitHandlerTestSuite) TestApprovePermit_InsufficientRole() {
	err := apperrors.NewUnauthorizedError(string(access.ReasonInsufficientRole), "approving a permit requires safety_officer or site_manager")
	s.mockPermitService.On("ApprovePermit", mock.Anything, s.principal, "permit-1", dto.DecidePermitRequest{}).
		Return(nil, err).Once()

	rr := s.authed(http.MethodPost, "/api/v1/permits/permit-1/approve", nil)

	resp := s.assertErrorCode(rr, http.StatusForbidden, apperrors.CodeUnauthorized)
	s.Equal(string(access.ReasonInsufficientRole), resp.Details["reason"])
}

func (s *PermitHandlerTestSuite) TestApprovePermit_AlreadyDecided() {
	s.mockPermitService.On("ApprovePermit", mock.Anything, s.principal, "permit-1", dto.DecidePermitRequest{}).
		Return(nil, apperrors.NewTerminalStateError("permit", string(domain.PermitDenied))).Once()

	rr := s.authed(http.MethodPost, "/api/v1/permits/permit-1/approve", nil)

	s.assertErrorCode(rr, http.StatusConflict, apperrors.CodeTerminalState)
}

func (s *PermitHandlerTestSuite) TestListPermits_Filters() {
	params := dto.ListPermitsParams{SiteID: "site-1", Status: "approved", ListParams: dto.ListParams{Limit: 20}}
	s.mockPermitService.On("ListPermits", mock.Anything, s.principal, params).
		Return([]domain.PermitRequest{*testPermit(domain.PermitApproved)}, nil).Once()

	rr := s.authed(http.MethodGet, "/api/v1/permits?siteID=site-1&status=approved", nil)

	s.Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp []domain.PermitRequest
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Len(resp, 1)
}

func (s *PermitHandlerTestSuite) TestRequestPermit_MissingDates() {
	body := map[string]string{"siteID": "site-1", "permitType": "hot_work"}

	rr := s.authed(http.MethodPost, "/api/v1/permits", body)

	s.assertErrorCode(rr, http.StatusBadRequest, apperrors.CodeValidation)
}

func TestPermitHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PermitHandlerTestSuite))
}
