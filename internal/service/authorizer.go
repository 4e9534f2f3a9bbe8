package service

import (
	"context"
	"strings"

	"github.com/ptmnhat/grafana-proxy/internal/hasher"
	"github.com/ptmnhat/grafana-proxy/internal/repository"
)

// Decision identifies the tenant that matched an authorization attempt. It
// carries no key material; the proxy boundary only needs identity for
// downstream logging.
type Decision struct {
	TenantID        uint
	TenantName      string
	TenantShortCode string
}

// Authorizer evaluates one (credential, dashboard) pair against the active
// key set. It is read-only: repeated calls with the same inputs yield the
// same outcome absent concurrent administrative mutation.
type Authorizer struct {
	repo   repository.Repository
	hasher hasher.APIKeyHasher
}

func NewAuthorizer(repo repository.Repository, hasher hasher.APIKeyHasher) *Authorizer {
	return &Authorizer{repo: repo, hasher: hasher}
}

// Authorize matches the candidate secret against every active key hash and
// then checks the matched tenant's permission for the dashboard UID.
//
// The match is a linear scan by necessity: hashes are salted and cannot be
// looked up directly, so each active key costs one deliberately expensive
// verification. Callers should treat active-key count as a latency parameter.
func (a *Authorizer) Authorize(ctx context.Context, candidateSecret, dashboardUID string) (*Decision, error) {
	if candidateSecret == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(dashboardUID) == "" {
		return nil, ErrMissingDashboardUID
	}

	activeKeys, err := a.repo.APIKey().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var decision *Decision
	for i := range activeKeys {
		// Stop burning CPU on hash verification once the caller is gone.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := &activeKeys[i]
		if !a.hasher.Verify(candidateSecret, key.KeyHash) {
			continue
		}
		if key.Tenant == nil {
			// Key without an owner is unusable; keep scanning.
			continue
		}
		decision = &Decision{
			TenantID:        key.TenantID,
			TenantName:      key.Tenant.Name,
			TenantShortCode: key.Tenant.ShortCode,
		}
		break
	}
	if decision == nil {
		return nil, ErrInvalidAPIKey
	}

	hasPermission, err := a.repo.Permission().Exists(ctx, decision.TenantID, dashboardUID)
	if err != nil {
		return nil, err
	}
	if !hasPermission {
		return nil, ErrPermissionDenied
	}

	return decision, nil
}
