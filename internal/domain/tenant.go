package domain

import (
	"time"
)

// Tenant — арендатор (владелец доменов, ящиков и подписки)
type Tenant struct {
	ID        string    `json:"id"`         // Уникальный идентификатор (UUID)
	Name      string    `json:"name"`       // Название арендатора
	Email     string    `json:"email"`      // Контактный email
	IsActive  bool      `json:"is_active"`  // Активен ли арендатор
	CreatedAt time.Time `json:"created_at"` // Дата регистрации (от неё считается триал)
}

// TrialDays — длительность бесплатного пробного периода в днях
const TrialDays = 8

// InTrialWindow проверяет, действует ли ещё пробный период арендатора
func (t *Tenant) InTrialWindow(now time.Time) bool {
	days := int(now.Sub(t.CreatedAt).Hours() / 24)
	return days <= TrialDays
}
