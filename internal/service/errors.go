package service

import "errors"

var (
	// Administrative errors. These are specific and actionable because the
	// caller is trusted tooling.
	ErrTenantNotFound        = errors.New("tenant not found")
	ErrTenantNameExists      = errors.New("tenant with this name already exists")
	ErrTenantShortCodeExists = errors.New("tenant with this short code already exists")
	ErrPermissionExists      = errors.New("tenant already has permission for this dashboard")
	ErrEmptyTenantName       = errors.New("tenant name cannot be empty")
	ErrEmptyShortCode        = errors.New("tenant short code cannot be empty")
	ErrEmptyDashboardUID     = errors.New("dashboard uid cannot be empty")
	ErrInvalidKeyIndex       = errors.New("invalid key index, must be 0 or 1")
	ErrInconsistentKeyCount  = errors.New("tenant key data is inconsistent")

	// Authorization errors. The unauthenticated caller sees the same denial
	// for all of them; the distinction exists for internal logging.
	ErrMissingAPIKey       = errors.New("api key not found in header or query string")
	ErrMissingDashboardUID = errors.New("dashboard uid missing from request path")
	ErrInvalidAPIKey       = errors.New("invalid or inactive api key")
	ErrPermissionDenied    = errors.New("tenant does not have permission for this dashboard")
)
