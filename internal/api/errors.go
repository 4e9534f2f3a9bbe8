package api

import (
	"errors"
	"net/http"

	"github.com/ptmnhat/grafana-proxy/internal/service"
)

// statusFromError maps lifecycle errors onto HTTP statuses for the trusted
// administrative caller. Unknown errors stay 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTenantNameExists),
		errors.Is(err, service.ErrTenantShortCodeExists),
		errors.Is(err, service.ErrPermissionExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyTenantName),
		errors.Is(err, service.ErrEmptyShortCode),
		errors.Is(err, service.ErrEmptyDashboardUID),
		errors.Is(err, service.ErrInvalidKeyIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
