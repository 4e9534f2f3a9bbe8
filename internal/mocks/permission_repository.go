package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type PermissionRepository struct {
	mock.Mock
}

func (m *PermissionRepository) Exists(ctx context.Context, tenantID uint, dashboardUID string) (bool, error) {
	args := m.Called(ctx, tenantID, dashboardUID)
	return args.Bool(0), args.Error(1)
}

func (m *PermissionRepository) Create(ctx context.Context, permission *domain.DashboardPermission) (*domain.DashboardPermission, error) {
	args := m.Called(ctx, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardPermission), args.Error(1)
}
