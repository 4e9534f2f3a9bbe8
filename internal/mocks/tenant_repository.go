package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) CreateWithKeys(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *TenantRepository) GetByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *TenantRepository) FindByNameOrShortCode(ctx context.Context, name, shortCode string) (*domain.Tenant, error) {
	args := m.Called(ctx, name, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *TenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *TenantRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
