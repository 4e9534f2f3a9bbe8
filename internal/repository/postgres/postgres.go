package postgres

import (
	"gorm.io/gorm"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/repository"
)

type postgresRepository struct {
	writerDB       *gorm.DB
	readerDB       *gorm.DB
	tenantRepo     repository.TenantRepository
	apiKeyRepo     repository.APIKeyRepository
	permissionRepo repository.PermissionRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	return &postgresRepository{
		writerDB:       dbConnections.Writer,
		readerDB:       dbConnections.Reader,
		tenantRepo:     NewTenantRepository(dbConnections.Writer, dbConnections.Reader),
		apiKeyRepo:     NewAPIKeyRepository(dbConnections.Writer, dbConnections.Reader),
		permissionRepo: NewPermissionRepository(dbConnections.Writer, dbConnections.Reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) APIKey() repository.APIKeyRepository {
	return r.apiKeyRepo
}

func (r *postgresRepository) Permission() repository.PermissionRepository {
	return r.permissionRepo
}
