// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/ptmnhat/grafana-proxy/internal/repository"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Tenant() repository.TenantRepository {
	args := m.Called()
	return args.Get(0).(repository.TenantRepository)
}

func (m *Repository) APIKey() repository.APIKeyRepository {
	args := m.Called()
	return args.Get(0).(repository.APIKeyRepository)
}

func (m *Repository) Permission() repository.PermissionRepository {
	args := m.Called()
	return args.Get(0).(repository.PermissionRepository)
}
