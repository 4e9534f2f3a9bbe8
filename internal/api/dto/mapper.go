package dto

import (
	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:             t.ID,
		Name:           t.Name,
		ShortCode:      t.ShortCode,
		CreatedAt:      t.CreatedAt,
		LastModifiedAt: t.LastModifiedAt,
	}
}

func ToTenantDetailResponse(t *domain.Tenant) TenantDetailResponse {
	resp := TenantDetailResponse{
		TenantResponse: ToTenantResponse(t),
		APIKeys:        make([]APIKeyMetadata, len(t.APIKeys)),
		Permissions:    make([]DashboardPermissionResponse, len(t.Permissions)),
	}
	for i, key := range t.APIKeys {
		resp.APIKeys[i] = APIKeyMetadata{
			ID:             key.ID,
			IsActive:       key.IsActive,
			CreatedAt:      key.CreatedAt,
			LastModifiedAt: key.LastModifiedAt,
		}
	}
	for i, perm := range t.Permissions {
		resp.Permissions[i] = ToDashboardPermissionResponse(&perm)
	}
	return resp
}

func ToDashboardPermissionResponse(p *domain.DashboardPermission) DashboardPermissionResponse {
	return DashboardPermissionResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		DashboardUID:   p.DashboardUID,
		CreatedAt:      p.CreatedAt,
		LastModifiedAt: p.LastModifiedAt,
	}
}
