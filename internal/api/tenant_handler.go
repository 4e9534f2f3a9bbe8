package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ptmnhat/grafana-proxy/internal/api/dto"
	"github.com/ptmnhat/grafana-proxy/internal/service"
)

//go:generate mockery --name TenantService --output ../mocks
type TenantService interface {
	Create(ctx context.Context, req dto.CreateTenantRequest) (dto.CreateTenantResponse, error)
	RegenerateKey(ctx context.Context, tenantID uint, keyIndex int) (dto.RegenerateKeyResponse, error)
	GrantPermission(ctx context.Context, tenantID uint, req dto.AddDashboardPermissionRequest) (dto.DashboardPermissionResponse, error)
	GetByID(ctx context.Context, id uint) (dto.TenantDetailResponse, error)
	List(ctx context.Context) ([]dto.TenantResponse, error)
	Delete(ctx context.Context, id uint) error
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
}

func NewTenantHandler(service TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenant registers a tenant and returns its two freshly minted
// plaintext API keys. The keys appear in this response and nowhere else.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// GetTenant returns the tenant with key metadata and permissions. Stored
// hashes are never serialized.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, ok := h.tenantIDParam(c)
	if !ok {
		return
	}

	tenant, err := h.service.GetByID(h.RequestCtx(c), tenantID)
	if err != nil {
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// ListTenants returns all tenant summaries.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.service.List(h.RequestCtx(c))
	if err != nil {
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// DeleteTenant removes the tenant with its keys and permissions.
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	tenantID, ok := h.tenantIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(h.RequestCtx(c), tenantID); err != nil {
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegenerateKey rotates the key at the given index (0 or 1) and returns the
// replacement plaintext key exactly once.
func (h *TenantHandler) RegenerateKey(c *gin.Context) {
	tenantID, ok := h.tenantIDParam(c)
	if !ok {
		return
	}

	keyIndex, err := strconv.Atoi(c.Param("keyIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: service.ErrInvalidKeyIndex.Error()})
		return
	}

	resp, err := h.service.RegenerateKey(h.RequestCtx(c), tenantID, keyIndex)
	if err != nil {
		if errors.Is(err, service.ErrInconsistentKeyCount) {
			// Integrity violation: actionable detail goes to the admin
			// caller, diagnosis happens server-side.
			c.JSON(http.StatusInternalServerError, dto.Error{Error: "Tenant key data is inconsistent"})
			return
		}
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddDashboardPermission grants the tenant access to one dashboard UID.
func (h *TenantHandler) AddDashboardPermission(c *gin.Context) {
	tenantID, ok := h.tenantIDParam(c)
	if !ok {
		return
	}

	var req dto.AddDashboardPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	permission, err := h.service.GrantPermission(h.RequestCtx(c), tenantID, req)
	if err != nil {
		c.JSON(statusFromError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, permission)
}

func (h *TenantHandler) tenantIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("tenantId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid tenant id"})
		return 0, false
	}
	return uint(id), true
}
