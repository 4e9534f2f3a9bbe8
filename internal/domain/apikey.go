package domain

import (
	"time"
)

// APIKey stores only the salted hash of a credential. The plaintext secret
// exists transiently at mint/rotation time and is returned to the caller
// exactly once.
type APIKey struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	KeyHash        string    `gorm:"type:text;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	LastModifiedAt time.Time `gorm:"type:timestamp with time zone" json:"last_modified_at"`

	TenantID uint    `gorm:"not null;index" json:"tenant_id"`
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (APIKey) TableName() string {
	return "api_keys"
}
