package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// CreateWithKeys inserts the tenant and any API keys attached to it inside a
// single transaction, so the tenant never becomes visible without its keys.
func (r *TenantRepository) CreateWithKeys(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(tenant).Error
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.readerDB.WithContext(ctx).
		Preload("APIKeys", func(db *gorm.DB) *gorm.DB { return db.Order("api_keys.id ASC") }).
		Preload("Permissions").
		First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) FindByNameOrShortCode(ctx context.Context, name, shortCode string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.readerDB.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) OR LOWER(short_code) = LOWER(?)", name, shortCode).
		First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	if err := r.readerDB.WithContext(ctx).Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Delete removes the tenant; keys and permissions go with it via the cascade
// constraint.
func (r *TenantRepository) Delete(ctx context.Context, id uint) error {
	return r.writerDB.WithContext(ctx).Delete(&domain.Tenant{}, "id = ?", id).Error
}
