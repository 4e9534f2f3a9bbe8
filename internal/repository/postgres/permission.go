package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type PermissionRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewPermissionRepository(writerDB, readerDB *gorm.DB) *PermissionRepository {
	return &PermissionRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *PermissionRepository) Exists(ctx context.Context, tenantID uint, dashboardUID string) (bool, error) {
	var count int64
	err := r.readerDB.WithContext(ctx).
		Model(&domain.DashboardPermission{}).
		Where("tenant_id = ? AND LOWER(dashboard_uid) = LOWER(?)", tenantID, dashboardUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PermissionRepository) Create(ctx context.Context, permission *domain.DashboardPermission) (*domain.DashboardPermission, error) {
	if err := r.writerDB.WithContext(ctx).Create(permission).Error; err != nil {
		return nil, err
	}
	return permission, nil
}
