package domain

import (
	"time"
)

// Plan — тарифный план подписки
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPremium Plan = "PREMIUM"
)

// BillingCycle — периодичность оплаты подписки
type BillingCycle string

const (
	CycleMonthly BillingCycle = "MONTHLY"
	CycleYearly  BillingCycle = "YEARLY"
)

// Subscription — подписка арендатора
// Инвариант: у арендатора не более одной активной подписки одновременно
type Subscription struct {
	ID           string       `json:"id"`            // Уникальный идентификатор
	TenantID     string       `json:"tenant_id"`     // ID арендатора
	Plan         Plan         `json:"plan"`          // Тарифный план
	BillingCycle BillingCycle `json:"billing_cycle"` // Периодичность оплаты
	StartDate    time.Time    `json:"start_date"`    // Начало действия
	EndDate      time.Time    `json:"end_date"`      // Окончание действия
	IsActive     bool         `json:"is_active"`     // Активна ли подписка
}

// IsExpiredOn проверяет, истекла ли подписка на указанный момент
// Сравниваются только даты, время суток игнорируется
func (s *Subscription) IsExpiredOn(now time.Time) bool {
	today := truncateToDay(now)
	end := truncateToDay(s.EndDate)
	return today.After(end)
}

// truncateToDay обнуляет время суток, оставляя только дату
// Обе стороны сравнения приводятся к UTC, иначе около полуночи
// дата зависела бы от зоны сервера
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
