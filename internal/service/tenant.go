package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ptmnhat/grafana-proxy/internal/api/dto"
	"github.com/ptmnhat/grafana-proxy/internal/domain"
	"github.com/ptmnhat/grafana-proxy/internal/hasher"
	"github.com/ptmnhat/grafana-proxy/internal/repository"
)

// tenantKeyCount is a lifecycle policy, not a schema constraint: every tenant
// holds two keys so one can be rotated while the other stays in circulation.
const tenantKeyCount = 2

// TenantService owns the administrative key lifecycle: tenant creation, key
// rotation and permission grants. It never runs on the request-time
// authorization path.
type TenantService struct {
	repo   repository.Repository
	hasher hasher.APIKeyHasher
}

func NewTenantService(repo repository.Repository, hasher hasher.APIKeyHasher) *TenantService {
	return &TenantService{repo: repo, hasher: hasher}
}

// Create registers a tenant and mints its two API keys in one transaction.
// The returned response carries the two plaintext secrets; this is the only
// moment they exist outside the caller's memory.
func (s *TenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (dto.CreateTenantResponse, error) {
	name := strings.TrimSpace(req.Name)
	shortCode := strings.TrimSpace(req.ShortCode)
	if name == "" {
		return dto.CreateTenantResponse{}, ErrEmptyTenantName
	}
	if shortCode == "" {
		return dto.CreateTenantResponse{}, ErrEmptyShortCode
	}

	existing, err := s.repo.Tenant().FindByNameOrShortCode(ctx, name, shortCode)
	if err != nil {
		return dto.CreateTenantResponse{}, err
	}
	if existing != nil {
		if strings.EqualFold(existing.Name, name) {
			return dto.CreateTenantResponse{}, ErrTenantNameExists
		}
		return dto.CreateTenantResponse{}, ErrTenantShortCodeExists
	}

	plaintextKeys := make([]string, tenantKeyCount)
	apiKeys := make([]domain.APIKey, tenantKeyCount)
	for i := range plaintextKeys {
		secret, err := generateAPIKey()
		if err != nil {
			return dto.CreateTenantResponse{}, err
		}
		// Each hash gets its own salt, so even colliding secrets would
		// store distinct values.
		keyHash, err := s.hasher.Hash(secret)
		if err != nil {
			return dto.CreateTenantResponse{}, err
		}
		plaintextKeys[i] = secret
		apiKeys[i] = domain.APIKey{KeyHash: keyHash, IsActive: true}
	}

	tenant := &domain.Tenant{
		Name:      name,
		ShortCode: shortCode,
		APIKeys:   apiKeys,
	}

	created, err := s.repo.Tenant().CreateWithKeys(ctx, tenant)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent create won the race between the uniqueness check and
		// the insert; the unique indexes rejected this one.
		return dto.CreateTenantResponse{}, s.conflictField(ctx, name, shortCode)
	}
	if err != nil {
		return dto.CreateTenantResponse{}, err
	}

	return dto.CreateTenantResponse{
		ID:               created.ID,
		Name:             created.Name,
		ShortCode:        created.ShortCode,
		CreatedAt:        created.CreatedAt,
		LastModifiedAt:   created.LastModifiedAt,
		GeneratedAPIKeys: plaintextKeys,
	}, nil
}

// RegenerateKey replaces the hash of the key at the given ordinal position
// (keys ordered by id) with a freshly minted secret's hash. The other key of
// the tenant is untouched, so rotation never causes downtime.
func (s *TenantService) RegenerateKey(ctx context.Context, tenantID uint, keyIndex int) (dto.RegenerateKeyResponse, error) {
	if keyIndex < 0 || keyIndex >= tenantKeyCount {
		return dto.RegenerateKeyResponse{}, ErrInvalidKeyIndex
	}

	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return dto.RegenerateKeyResponse{}, err
	}

	keys, err := s.repo.APIKey().ListByTenant(ctx, tenantID)
	if err != nil {
		return dto.RegenerateKeyResponse{}, err
	}
	if len(keys) != tenantKeyCount {
		// Detected integrity violation. Reported, never auto-repaired.
		return dto.RegenerateKeyResponse{}, ErrInconsistentKeyCount
	}

	secret, err := generateAPIKey()
	if err != nil {
		return dto.RegenerateKeyResponse{}, err
	}
	keyHash, err := s.hasher.Hash(secret)
	if err != nil {
		return dto.RegenerateKeyResponse{}, err
	}

	if err := s.repo.APIKey().ReplaceHash(ctx, keys[keyIndex].ID, keyHash); err != nil {
		return dto.RegenerateKeyResponse{}, err
	}

	return dto.RegenerateKeyResponse{NewAPIKey: secret}, nil
}

// GrantPermission allows the tenant to access one dashboard UID. Granting an
// existing permission (case-insensitive) is a conflict, not a duplicate row.
func (s *TenantService) GrantPermission(ctx context.Context, tenantID uint, req dto.AddDashboardPermissionRequest) (dto.DashboardPermissionResponse, error) {
	dashboardUID := strings.TrimSpace(req.DashboardUID)
	if dashboardUID == "" {
		return dto.DashboardPermissionResponse{}, ErrEmptyDashboardUID
	}

	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return dto.DashboardPermissionResponse{}, err
	}

	exists, err := s.repo.Permission().Exists(ctx, tenantID, dashboardUID)
	if err != nil {
		return dto.DashboardPermissionResponse{}, err
	}
	if exists {
		return dto.DashboardPermissionResponse{}, ErrPermissionExists
	}

	permission, err := s.repo.Permission().Create(ctx, &domain.DashboardPermission{
		TenantID:     tenantID,
		DashboardUID: dashboardUID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.DashboardPermissionResponse{}, ErrPermissionExists
	}
	if err != nil {
		return dto.DashboardPermissionResponse{}, err
	}

	return dto.ToDashboardPermissionResponse(permission), nil
}

func (s *TenantService) GetByID(ctx context.Context, id uint) (dto.TenantDetailResponse, error) {
	tenant, err := s.getTenant(ctx, id)
	if err != nil {
		return dto.TenantDetailResponse{}, err
	}
	return dto.ToTenantDetailResponse(tenant), nil
}

func (s *TenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	tenants, err := s.repo.Tenant().List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = dto.ToTenantResponse(&tenants[i])
	}
	return responses, nil
}

// Delete removes the tenant with its keys and permissions. Subsequent
// authorization attempts cannot match any of its keys.
func (s *TenantService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getTenant(ctx, id); err != nil {
		return err
	}
	return s.repo.Tenant().Delete(ctx, id)
}

// conflictField re-reads the conflicting tenant to report which field caused
// a duplicate-key insert failure. When the winner vanished again before the
// re-read, the name error stands in for the unattributable conflict.
func (s *TenantService) conflictField(ctx context.Context, name, shortCode string) error {
	existing, err := s.repo.Tenant().FindByNameOrShortCode(ctx, name, shortCode)
	if err == nil && existing != nil && !strings.EqualFold(existing.Name, name) {
		return ErrTenantShortCodeExists
	}
	return ErrTenantNameExists
}

func (s *TenantService) getTenant(ctx context.Context, id uint) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}
