package domain

import (
	"time"
)

// DashboardPermission grants one tenant access to one dashboard UID.
// Uniqueness of (tenant_id, lower(dashboard_uid)) is enforced by an
// expression index created in the migration step.
type DashboardPermission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DashboardUID   string    `gorm:"type:text;not null" json:"dashboard_uid"`
	CreatedAt      time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	LastModifiedAt time.Time `gorm:"type:timestamp with time zone" json:"last_modified_at"`

	TenantID uint    `gorm:"not null;index" json:"tenant_id"`
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (DashboardPermission) TableName() string {
	return "tenant_dashboard_permissions"
}
