package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/service"
	"github.com/ptmnhat/grafana-proxy/internal/utils"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

type MockDashboardAuthorizer struct {
	mock.Mock
}

func (m *MockDashboardAuthorizer) Authorize(ctx context.Context, candidateSecret, dashboardUID string) (*service.Decision, error) {
	args := m.Called(ctx, candidateSecret, dashboardUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Decision), args.Error(1)
}

type TenantAccessTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAuthorizer *MockDashboardAuthorizer
	seenTenantID   uint
	seenShortCode  string
}

func (s *TenantAccessTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIKeyHeader:     "X-Api-Key",
		APIKeyQueryParam: "apiKey",
	}
	s.mockAuthorizer = new(MockDashboardAuthorizer)
	s.seenTenantID = 0
	s.seenShortCode = ""

	mw := NewTenantAccessMiddleware(s.mockAuthorizer, cfg, logger.NewLogger("test"))

	s.router = gin.New()
	group := s.router.Group("/grafana/public/dashboards", mw.RequireDashboardAccess())
	handler := func(c *gin.Context) {
		if value, ok := c.Get(string(utils.TenantIDKey)); ok {
			s.seenTenantID = value.(uint)
		}
		if value, ok := c.Get(string(utils.TenantShortCodeKey)); ok {
			s.seenShortCode = value.(string)
		}
		c.Status(http.StatusOK)
	}
	group.GET("/:dashboardUid", handler)
	group.GET("/:dashboardUid/*remainder", handler)

	wildcard := s.router.Group("/grafana/public/raw", mw.RequireDashboardAccess())
	wildcard.GET("/*remainder", handler)
}

func TestTenantAccessMiddleware(t *testing.T) {
	suite.Run(t, new(TenantAccessTestSuite))
}

func (s *TenantAccessTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TenantAccessTestSuite) TestAllowWithHeaderKey() {
	decision := &service.Decision{TenantID: 7, TenantName: "Acme", TenantShortCode: "ACME"}
	s.mockAuthorizer.On("Authorize", mock.Anything, "secret-1", "dash-42").Return(decision, nil)

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	req.Header.Set("X-Api-Key", "secret-1")
	w := s.do(req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(uint(7), s.seenTenantID)
	s.Equal("ACME", s.seenShortCode)
}

func (s *TenantAccessTestSuite) TestQueryParamFallback() {
	decision := &service.Decision{TenantID: 7, TenantName: "Acme", TenantShortCode: "ACME"}
	s.mockAuthorizer.On("Authorize", mock.Anything, "secret-2", "dash-42").Return(decision, nil)

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42?apiKey=secret-2", nil)
	w := s.do(req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *TenantAccessTestSuite) TestHeaderWinsOverQuery() {
	decision := &service.Decision{TenantID: 7, TenantName: "Acme", TenantShortCode: "ACME"}
	s.mockAuthorizer.On("Authorize", mock.Anything, "from-header", "dash-42").Return(decision, nil)

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42?apiKey=from-query", nil)
	req.Header.Set("X-Api-Key", "from-header")
	w := s.do(req)

	s.Equal(http.StatusOK, w.Code)
	s.mockAuthorizer.AssertExpectations(s.T())
}

func (s *TenantAccessTestSuite) TestWildcardRemainderUID() {
	decision := &service.Decision{TenantID: 7, TenantName: "Acme", TenantShortCode: "ACME"}
	s.mockAuthorizer.On("Authorize", mock.Anything, "secret-3", "dash-42").Return(decision, nil)

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/raw/dash-42/panels/3", nil)
	req.Header.Set("X-Api-Key", "secret-3")
	w := s.do(req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *TenantAccessTestSuite) TestMissingKeyDenied() {
	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	w := s.do(req)

	s.Equal(http.StatusForbidden, w.Code)
	s.mockAuthorizer.AssertNotCalled(s.T(), "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

// Invalid credential and permission-denied must be indistinguishable to the
// caller: same status, same body.
func (s *TenantAccessTestSuite) TestDenialsAreUniform() {
	s.mockAuthorizer.On("Authorize", mock.Anything, "bad-key", "dash-42").Return(nil, service.ErrInvalidAPIKey)
	s.mockAuthorizer.On("Authorize", mock.Anything, "good-key", "dash-42").Return(nil, service.ErrPermissionDenied)

	reqInvalid := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	reqInvalid.Header.Set("X-Api-Key", "bad-key")
	wInvalid := s.do(reqInvalid)

	reqDenied := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	reqDenied.Header.Set("X-Api-Key", "good-key")
	wDenied := s.do(reqDenied)

	s.Equal(http.StatusForbidden, wInvalid.Code)
	s.Equal(http.StatusForbidden, wDenied.Code)
	assert.Equal(s.T(), wInvalid.Body.String(), wDenied.Body.String())
}

// An abandoned request is not an authorized one; it must not finalize as 200.
func (s *TenantAccessTestSuite) TestCancelledRequestIsNotASuccess() {
	s.mockAuthorizer.On("Authorize", mock.Anything, "any-key", "dash-42").Return(nil, context.Canceled)

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	req.Header.Set("X-Api-Key", "any-key")
	w := s.do(req)

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Equal(uint(0), s.seenTenantID, "handler must not run")
}

func (s *TenantAccessTestSuite) TestStoreFaultFailsClosed() {
	s.mockAuthorizer.On("Authorize", mock.Anything, "any-key", "dash-42").Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42", nil)
	req.Header.Set("X-Api-Key", "any-key")
	w := s.do(req)

	s.Equal(http.StatusInternalServerError, w.Code)
}
