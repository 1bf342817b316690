package repository

import (
	"context"
	"database/sql"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// MailboxRepository — репозиторий для работы с почтовыми ящиками
type MailboxRepository struct {
	db *sql.DB // Подключение к базе данных
}

// NewMailboxRepository создаёт новый репозиторий
func NewMailboxRepository(db *sql.DB) *MailboxRepository {
	return &MailboxRepository{db: db}
}

// FindActiveByAddress находит активный ящик по адресу
// Ящики на неподтверждённых доменах не возвращаются никогда:
// это граница безопасности, а не оптимизация выборки
func (r *MailboxRepository) FindActiveByAddress(ctx context.Context, address string) (*domain.Mailbox, error) {
	query := `
        SELECT m.id, m.tenant_id, m.domain_id, m.address, m.status, m.is_active, m.created_at
        FROM mailboxes m
        JOIN domains d ON d.id = m.domain_id
        WHERE lower(m.address) = $1
          AND m.is_active = true
          AND m.status = $2
          AND d.status = $3
    `

	mailbox := &domain.Mailbox{}
	err := r.db.QueryRowContext(ctx, query, address, domain.MailboxActive, domain.DomainVerified).Scan(
		&mailbox.ID,
		&mailbox.TenantID,
		&mailbox.DomainID,
		&mailbox.Address,
		&mailbox.Status,
		&mailbox.IsActive,
		&mailbox.CreatedAt,
	)

	if err == sql.ErrNoRows {
		// Запись не найдена — это не ошибка
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return mailbox, nil
}

// GetByID находит ящик по ID
func (r *MailboxRepository) GetByID(ctx context.Context, id string) (*domain.Mailbox, error) {
	query := `
        SELECT id, tenant_id, domain_id, address, status, is_active, created_at
        FROM mailboxes
        WHERE id = $1
    `

	mailbox := &domain.Mailbox{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&mailbox.ID,
		&mailbox.TenantID,
		&mailbox.DomainID,
		&mailbox.Address,
		&mailbox.Status,
		&mailbox.IsActive,
		&mailbox.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return mailbox, nil
}

// CountByTenant возвращает количество ящиков арендатора
func (r *MailboxRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM mailboxes WHERE tenant_id = $1`

	var count int64
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
