package dto

import (
	"time"
)

// CreateTenantResponse is the only place the freshly minted plaintext keys
// ever appear. They are not persisted and cannot be retrieved again.
type CreateTenantResponse struct {
	ID               uint      `json:"id" example:"1"`
	Name             string    `json:"name" example:"Acme"`
	ShortCode        string    `json:"short_code" example:"ACME"`
	CreatedAt        time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	LastModifiedAt   time.Time `json:"last_modified_at" example:"2025-07-17T21:20:48Z"`
	GeneratedAPIKeys []string  `json:"generated_api_keys"`
}

// RegenerateKeyResponse carries the replacement plaintext key, returned once.
type RegenerateKeyResponse struct {
	NewAPIKey string `json:"new_api_key"`
}

// TenantResponse is the key-material-free tenant summary.
type TenantResponse struct {
	ID             uint      `json:"id" example:"1"`
	Name           string    `json:"name" example:"Acme"`
	ShortCode      string    `json:"short_code" example:"ACME"`
	CreatedAt      time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	LastModifiedAt time.Time `json:"last_modified_at" example:"2025-07-17T21:20:48Z"`
}

// APIKeyMetadata exposes key bookkeeping without the stored hash.
type APIKeyMetadata struct {
	ID             uint      `json:"id" example:"1"`
	IsActive       bool      `json:"is_active" example:"true"`
	CreatedAt      time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	LastModifiedAt time.Time `json:"last_modified_at" example:"2025-07-17T21:20:48Z"`
}

type DashboardPermissionResponse struct {
	ID             uint      `json:"id" example:"1"`
	TenantID       uint      `json:"tenant_id" example:"1"`
	DashboardUID   string    `json:"dashboard_uid" example:"dash-42"`
	CreatedAt      time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	LastModifiedAt time.Time `json:"last_modified_at" example:"2025-07-17T21:20:48Z"`
}

type TenantDetailResponse struct {
	TenantResponse
	APIKeys     []APIKeyMetadata              `json:"api_keys"`
	Permissions []DashboardPermissionResponse `json:"permissions"`
}
