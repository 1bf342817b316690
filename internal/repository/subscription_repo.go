package repository

import (
	"context"
	"database/sql"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// SubscriptionRepository — репозиторий для работы с подписками
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository создаёт новый репозиторий
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetActiveByTenant находит активную подписку арендатора
// По инварианту активная подписка не более одной; погасшие строки
// с is_active = false сюда не попадают
func (r *SubscriptionRepository) GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	query := `
        SELECT id, tenant_id, plan, billing_cycle, start_date, end_date, is_active
        FROM subscriptions
        WHERE tenant_id = $1 AND is_active = true
    `

	sub := &domain.Subscription{}
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.Plan,
		&sub.BillingCycle,
		&sub.StartDate,
		&sub.EndDate,
		&sub.IsActive,
	)

	if err == sql.ErrNoRows {
		// Подписки нет — арендатор может находиться в пробном периоде
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}
