package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	// ClaimsKey holds the admin JWT claims on management routes.
	ClaimsKey ContextKey = "claims"
	// TenantIDKey holds the tenant matched by API key verification on
	// proxy routes. It is set by the tenant access middleware only after
	// a successful authorization decision.
	TenantIDKey ContextKey = "tenant_id"
	// TenantShortCodeKey carries the matched tenant's short code for
	// downstream logging.
	TenantShortCodeKey ContextKey = "tenant_short_code"
)

var (
	ErrNoClaimsInContext = errors.New("no claims found in context")
	ErrNoTenantInContext = errors.New("no tenant found in context")
	ErrInvalidTenantType = errors.New("tenant id must be a uint")
)

// GetTenantIDFromContext returns the tenant matched for this request, or an
// error when the request has not passed the tenant access middleware.
func GetTenantIDFromContext(c context.Context) (uint, error) {
	value := c.Value(TenantIDKey)
	if value == nil {
		return 0, ErrNoTenantInContext
	}

	tenantID, ok := value.(uint)
	if !ok {
		return 0, ErrInvalidTenantType
	}
	return tenantID, nil
}

// GetClaimsFromContext returns the admin JWT claims on management routes.
func GetClaimsFromContext(c context.Context) (jwt.MapClaims, error) {
	claims, ok := c.Value(ClaimsKey).(jwt.MapClaims)
	if !ok {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}
