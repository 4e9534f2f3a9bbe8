package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ptmnhat/grafana-proxy/internal/domain"
)

type APIKeyRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewAPIKeyRepository(writerDB, readerDB *gorm.DB) *APIKeyRepository {
	return &APIKeyRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *APIKeyRepository) ListActive(ctx context.Context) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	err := r.readerDB.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Tenant").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *APIKeyRepository) ListByTenant(ctx context.Context, tenantID uint) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// ReplaceHash updates only the hash, active flag and last_modified_at of the
// key row. created_at is deliberately not in the column set, so rotation can
// never rewrite it.
func (r *APIKeyRepository) ReplaceHash(ctx context.Context, keyID uint, keyHash string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.APIKey{}).
		Where("id = ?", keyID).
		Updates(map[string]any{
			"key_hash":         keyHash,
			"is_active":        true,
			"last_modified_at": time.Now().UTC(),
		}).Error
}
