package domain

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps are stamped inside the write transaction via gorm hooks so the
// persisted time can never drift from the mutation that produced it.
// CreatedAt is set once at first insert; updates only touch LastModifiedAt.

func (t *Tenant) BeforeCreate(*gorm.DB) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.LastModifiedAt = now
	return nil
}

func (t *Tenant) BeforeUpdate(*gorm.DB) error {
	t.LastModifiedAt = time.Now().UTC()
	return nil
}

func (k *APIKey) BeforeCreate(*gorm.DB) error {
	now := time.Now().UTC()
	k.CreatedAt = now
	k.LastModifiedAt = now
	return nil
}

func (k *APIKey) BeforeUpdate(*gorm.DB) error {
	k.LastModifiedAt = time.Now().UTC()
	return nil
}

func (p *DashboardPermission) BeforeCreate(*gorm.DB) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.LastModifiedAt = now
	return nil
}

func (p *DashboardPermission) BeforeUpdate(*gorm.DB) error {
	p.LastModifiedAt = time.Now().UTC()
	return nil
}
