package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ptmnhat/grafana-proxy/internal/middleware"
)

type Server struct {
	tenant    *TenantHandler
	auth      *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
}

func NewServer(
	tenantService TenantService,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) *Server {
	return &Server{
		tenant:    NewTenantHandler(tenantService),
		auth:      auth,
		rateLimit: rateLimit,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.rateLimit.GlobalRateLimit(10000)) // 10k requests per minute per IP

	tenants := api.Group("/tenants", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
	{
		tenants.POST("", s.tenant.CreateTenant)
		tenants.GET("", s.tenant.ListTenants)
		tenants.GET("/:tenantId", s.tenant.GetTenant)
		tenants.DELETE("/:tenantId", s.tenant.DeleteTenant)
		tenants.POST("/:tenantId/keys/:keyIndex/regenerate", s.tenant.RegenerateKey)
		tenants.POST("/:tenantId/dashboards", s.tenant.AddDashboardPermission)
	}
}
