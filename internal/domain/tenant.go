package domain

import (
	"time"
)

type Tenant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	ShortCode      string    `gorm:"type:text;not null" json:"short_code"`
	CreatedAt      time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	LastModifiedAt time.Time `gorm:"type:timestamp with time zone" json:"last_modified_at"`

	APIKeys     []APIKey              `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Permissions []DashboardPermission `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Tenant) TableName() string {
	return "tenants"
}
