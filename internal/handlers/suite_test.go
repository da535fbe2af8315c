package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/handlers"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/SscSPs/site_safety_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testUserID    = "user-1"
	testTenantID  = "tenant-1"
)

var registerValidatorsOnce sync.Once

// handlerSuite wires the real auth and principal middleware in front of the
// routes under test. Embedding suites register their routes on v1.
type handlerSuite struct {
	suite.Suite
	router     *gin.Engine
	v1         *gin.RouterGroup
	mockAccess *MockAccessService
	principal  domain.Principal
}

func (s *handlerSuite) setupRouter() {
	gin.SetMode(gin.TestMode)
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			s.Require().NoError(dto.RegisterValidators(v))
		}
	})

	s.principal = domain.Principal{
		UserID:   testUserID,
		TenantID: testTenantID,
		Role:     domain.RoleSafetyOfficer,
		IsActive: true,
	}
	s.mockAccess = new(MockAccessService)
	s.mockAccess.On("ResolvePrincipal", mock.Anything, testUserID).Return(&s.principal, nil).Maybe()

	s.router = gin.New()
	s.v1 = s.router.Group("/api/v1",
		middleware.AuthMiddleware(testJWTSecret),
		middleware.PrincipalMiddleware(s.mockAccess),
	)
}

// generateTestToken signs an access token the way the auth service does.
func (s *handlerSuite) generateTestToken(userID, tenantID string) string {
	token, _, err := utils.GenerateJWT(userID, tenantID, testJWTSecret, time.Hour, "ssa-test", time.Now())
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

// doRequest performs a request as testUserID. An empty token sends no Authorization header.
func (s *handlerSuite) doRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *handlerSuite) authed(method, path string, body any) *httptest.ResponseRecorder {
	return s.doRequest(method, path, body, s.generateTestToken(testUserID, testTenantID))
}

func (s *handlerSuite) decodeError(rr *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (s *handlerSuite) assertErrorCode(rr *httptest.ResponseRecorder, status int, code string) handlers.ErrorResponse {
	s.Equal(status, rr.Code, rr.Body.String())
	resp := s.decodeError(rr)
	s.Equal(code, resp.Code)
	return resp
}
