package repository

import (
	"context"
	"database/sql"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// DomainRepository — репозиторий для работы с доменами арендаторов
// Состояние проверки домена меняется внешним процессом, здесь только чтение
type DomainRepository struct {
	db *sql.DB
}

// NewDomainRepository создаёт новый репозиторий
func NewDomainRepository(db *sql.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

// GetByID находит домен по ID
func (r *DomainRepository) GetByID(ctx context.Context, id string) (*domain.MailDomain, error) {
	query := `
        SELECT id, tenant_id, name, status, created_at
        FROM domains
        WHERE id = $1
    `

	d := &domain.MailDomain{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.TenantID,
		&d.Name,
		&d.Status,
		&d.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// CountByTenant возвращает количество доменов арендатора
func (r *DomainRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM domains WHERE tenant_id = $1`

	var count int64
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
