package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ptmnhat/grafana-proxy/internal/api/dto"
	"github.com/ptmnhat/grafana-proxy/internal/service"
)

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (dto.CreateTenantResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.CreateTenantResponse), args.Error(1)
}

func (m *MockTenantService) RegenerateKey(ctx context.Context, tenantID uint, keyIndex int) (dto.RegenerateKeyResponse, error) {
	args := m.Called(ctx, tenantID, keyIndex)
	return args.Get(0).(dto.RegenerateKeyResponse), args.Error(1)
}

func (m *MockTenantService) GrantPermission(ctx context.Context, tenantID uint, req dto.AddDashboardPermissionRequest) (dto.DashboardPermissionResponse, error) {
	args := m.Called(ctx, tenantID, req)
	return args.Get(0).(dto.DashboardPermissionResponse), args.Error(1)
}

func (m *MockTenantService) GetByID(ctx context.Context, id uint) (dto.TenantDetailResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.TenantDetailResponse), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TenantResponse), args.Error(1)
}

func (m *MockTenantService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type TenantHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTenantService
}

func (s *TenantHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockTenantService)
	handler := NewTenantHandler(s.mockService)

	s.router = gin.New()
	s.router.POST("/tenants", handler.CreateTenant)
	s.router.GET("/tenants", handler.ListTenants)
	s.router.GET("/tenants/:tenantId", handler.GetTenant)
	s.router.DELETE("/tenants/:tenantId", handler.DeleteTenant)
	s.router.POST("/tenants/:tenantId/keys/:keyIndex/regenerate", handler.RegenerateKey)
	s.router.POST("/tenants/:tenantId/dashboards", handler.AddDashboardPermission)
}

func TestTenantHandler(t *testing.T) {
	suite.Run(t, new(TenantHandlerTestSuite))
}

func (s *TenantHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TenantHandlerTestSuite) TestCreateTenant_Success() {
	now := time.Now().UTC()
	resp := dto.CreateTenantResponse{
		ID:               1,
		Name:             "Acme",
		ShortCode:        "ACME",
		CreatedAt:        now,
		LastModifiedAt:   now,
		GeneratedAPIKeys: []string{"plain-key-1", "plain-key-2"},
	}
	s.mockService.On("Create", mock.Anything, dto.CreateTenantRequest{Name: "Acme", ShortCode: "ACME"}).
		Return(resp, nil)

	w := s.postJSON("/tenants", gin.H{"name": "Acme", "short_code": "ACME"})

	s.Equal(http.StatusCreated, w.Code)

	var body dto.CreateTenantResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(uint(1), body.ID)
	s.Len(body.GeneratedAPIKeys, 2)
	s.mockService.AssertExpectations(s.T())
}

func (s *TenantHandlerTestSuite) TestCreateTenant_MissingFields() {
	w := s.postJSON("/tenants", gin.H{"name": "Acme"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TenantHandlerTestSuite) TestCreateTenant_Conflict() {
	s.mockService.On("Create", mock.Anything, mock.Anything).
		Return(dto.CreateTenantResponse{}, service.ErrTenantNameExists)

	w := s.postJSON("/tenants", gin.H{"name": "Acme", "short_code": "ACME"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *TenantHandlerTestSuite) TestRegenerateKey_Success() {
	s.mockService.On("RegenerateKey", mock.Anything, uint(1), 0).
		Return(dto.RegenerateKeyResponse{NewAPIKey: "new-plain-key"}, nil)

	w := s.postJSON("/tenants/1/keys/0/regenerate", nil)

	s.Equal(http.StatusOK, w.Code)

	var body dto.RegenerateKeyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("new-plain-key", body.NewAPIKey)
}

func (s *TenantHandlerTestSuite) TestRegenerateKey_InvalidIndex() {
	s.mockService.On("RegenerateKey", mock.Anything, uint(1), 5).
		Return(dto.RegenerateKeyResponse{}, service.ErrInvalidKeyIndex)

	w := s.postJSON("/tenants/1/keys/5/regenerate", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TenantHandlerTestSuite) TestRegenerateKey_InconsistentKeys() {
	s.mockService.On("RegenerateKey", mock.Anything, uint(1), 0).
		Return(dto.RegenerateKeyResponse{}, service.ErrInconsistentKeyCount)

	w := s.postJSON("/tenants/1/keys/0/regenerate", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *TenantHandlerTestSuite) TestRegenerateKey_TenantNotFound() {
	s.mockService.On("RegenerateKey", mock.Anything, uint(42), 0).
		Return(dto.RegenerateKeyResponse{}, service.ErrTenantNotFound)

	w := s.postJSON("/tenants/42/keys/0/regenerate", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TenantHandlerTestSuite) TestAddDashboardPermission_Success() {
	now := time.Now().UTC()
	s.mockService.On("GrantPermission", mock.Anything, uint(1), dto.AddDashboardPermissionRequest{DashboardUID: "dash-42"}).
		Return(dto.DashboardPermissionResponse{
			ID:             3,
			TenantID:       1,
			DashboardUID:   "dash-42",
			CreatedAt:      now,
			LastModifiedAt: now,
		}, nil)

	w := s.postJSON("/tenants/1/dashboards", gin.H{"dashboard_uid": "dash-42"})

	s.Equal(http.StatusCreated, w.Code)
}

func (s *TenantHandlerTestSuite) TestAddDashboardPermission_Duplicate() {
	s.mockService.On("GrantPermission", mock.Anything, uint(1), mock.Anything).
		Return(dto.DashboardPermissionResponse{}, service.ErrPermissionExists)

	w := s.postJSON("/tenants/1/dashboards", gin.H{"dashboard_uid": "dash-42"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *TenantHandlerTestSuite) TestGetTenant_InvalidID() {
	req := httptest.NewRequest(http.MethodGet, "/tenants/not-a-number", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *TenantHandlerTestSuite) TestDeleteTenant_Success() {
	s.mockService.On("Delete", mock.Anything, uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/tenants/1", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
}
