package repository

import (
	"context"
	"database/sql"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// TenantRepository — репозиторий для работы с арендаторами
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository создаёт новый репозиторий
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// GetByID находит арендатора по ID
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `
        SELECT id, name, email, is_active, created_at
        FROM tenants
        WHERE id = $1
    `

	tenant := &domain.Tenant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Email,
		&tenant.IsActive,
		&tenant.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tenant, nil
}
