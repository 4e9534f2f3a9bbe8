package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/service"
	"github.com/ptmnhat/grafana-proxy/internal/utils"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

//go:generate mockery --name DashboardAuthorizer --output ../mocks
type DashboardAuthorizer interface {
	Authorize(ctx context.Context, candidateSecret, dashboardUID string) (*service.Decision, error)
}

// TenantAccessMiddleware gates proxy routes: it extracts the candidate API
// key and the target dashboard UID from the request, asks the authorizer for
// a decision, and rejects or annotates the request accordingly.
//
// All negative outcomes present the same response to the caller. Which
// failure occurred (missing key, invalid key, permission gap) is an
// operational signal that goes to the log only.
type TenantAccessMiddleware struct {
	authorizer DashboardAuthorizer
	config     *config.Config
	logger     *logger.Logger
}

func NewTenantAccessMiddleware(authorizer DashboardAuthorizer, config *config.Config, logger *logger.Logger) *TenantAccessMiddleware {
	return &TenantAccessMiddleware{
		authorizer: authorizer,
		config:     config,
		logger:     logger,
	}
}

func (m *TenantAccessMiddleware) RequireDashboardAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret, keySource := m.extractAPIKey(c)
		if secret == "" {
			m.logger.Warn("API key not found in header or query string",
				zap.String("path", c.Request.URL.Path))
			deny(c)
			return
		}

		dashboardUID := extractDashboardUID(c)
		if dashboardUID == "" {
			m.logger.Warn("Could not extract dashboard UID from route path",
				zap.String("path", c.Request.URL.Path))
			deny(c)
			return
		}

		decision, err := m.authorizer.Authorize(c.Request.Context(), secret, dashboardUID)
		switch {
		case err == nil:
			// fall through below
		case errors.Is(err, service.ErrInvalidAPIKey):
			m.logger.Warn("Invalid or inactive API key presented",
				zap.String("key_source", keySource),
				zap.Int("key_length", len(secret)),
				zap.String("dashboard_uid", dashboardUID))
			deny(c)
			return
		case errors.Is(err, service.ErrPermissionDenied):
			m.logger.Warn("Tenant lacks permission for dashboard",
				zap.String("dashboard_uid", dashboardUID))
			deny(c)
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// The request was never authorized; an explicit error status
			// keeps the abandoned attempt out of the success logs.
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		default:
			// Unexpected fault, including detected data inconsistencies:
			// log loudly and fail closed.
			m.logger.Error("Authorization check failed", err,
				zap.String("dashboard_uid", dashboardUID))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		m.logger.Info("Authorization succeeded",
			zap.Uint("tenant_id", decision.TenantID),
			zap.String("tenant", decision.TenantName),
			zap.String("dashboard_uid", dashboardUID),
			zap.String("key_source", keySource))

		c.Set(string(utils.TenantIDKey), decision.TenantID)
		c.Set(string(utils.TenantShortCodeKey), decision.TenantShortCode)
		c.Next()
	}
}

// extractAPIKey reads the candidate secret, header first, query second.
func (m *TenantAccessMiddleware) extractAPIKey(c *gin.Context) (string, string) {
	if secret := c.GetHeader(m.config.APIKeyHeader); secret != "" {
		return secret, "header"
	}
	if secret := c.Query(m.config.APIKeyQueryParam); secret != "" {
		return secret, "query"
	}
	return "", ""
}

// extractDashboardUID prefers an explicit route parameter and falls back to
// the first segment of the catch-all remainder for wildcard routes.
func extractDashboardUID(c *gin.Context) string {
	if uid := c.Param("dashboardUid"); uid != "" {
		return uid
	}

	remainder := c.Param("remainder")
	for _, part := range strings.Split(remainder, "/") {
		if part != "" {
			return part
		}
	}
	return ""
}

// deny is the uniform negative response. The caller cannot tell a missing
// credential from an invalid one from a permission gap.
func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
}
