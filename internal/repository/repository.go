package repository

import (
	"context"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	// CreateWithKeys persists the tenant and its attached API keys in one
	// transaction; a concurrent reader sees either none of the rows or all
	// of them.
	CreateWithKeys(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uint) (*domain.Tenant, error)
	// FindByNameOrShortCode matches either field case-insensitively; used
	// for uniqueness checks before insert.
	FindByNameOrShortCode(ctx context.Context, name, shortCode string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	Delete(ctx context.Context, id uint) error
}

//go:generate mockery --name APIKeyRepository --output ../mocks
type APIKeyRepository interface {
	// ListActive returns every active key across all tenants with the
	// owning tenant attached. Hashes are salted and not indexable, so the
	// caller has to scan.
	ListActive(ctx context.Context) ([]domain.APIKey, error)
	// ListByTenant returns the tenant's keys ordered by id, oldest first.
	ListByTenant(ctx context.Context, tenantID uint) ([]domain.APIKey, error)
	// ReplaceHash swaps in a new hash, reactivates the key and bumps
	// last_modified_at. created_at is left untouched.
	ReplaceHash(ctx context.Context, keyID uint, keyHash string) error
}

//go:generate mockery --name PermissionRepository --output ../mocks
type PermissionRepository interface {
	Exists(ctx context.Context, tenantID uint, dashboardUID string) (bool, error)
	Create(ctx context.Context, permission *domain.DashboardPermission) (*domain.DashboardPermission, error)
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Tenant() TenantRepository
	APIKey() APIKeyRepository
	Permission() PermissionRepository
}
