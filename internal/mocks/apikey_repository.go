package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) ListActive(ctx context.Context) ([]domain.APIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIKey), args.Error(1)
}

func (m *APIKeyRepository) ListByTenant(ctx context.Context, tenantID uint) ([]domain.APIKey, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIKey), args.Error(1)
}

func (m *APIKeyRepository) ReplaceHash(ctx context.Context, keyID uint, keyHash string) error {
	args := m.Called(ctx, keyID, keyHash)
	return args.Error(0)
}
