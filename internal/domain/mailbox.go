package domain

import (
	"time"
)

// MailboxStatus — жизненный цикл почтового ящика
type MailboxStatus string

const (
	MailboxPending   MailboxStatus = "PENDING"   // Создан, но ещё не активирован
	MailboxActive    MailboxStatus = "ACTIVE"    // Принимает почту
	MailboxSuspended MailboxStatus = "SUSPENDED" // Приём почты приостановлен
)

// Mailbox — почтовый ящик арендатора
// Адрес уникален и хранится в нижнем регистре
type Mailbox struct {
	ID        string        `json:"id"`         // Уникальный идентификатор (UUID)
	TenantID  string        `json:"tenant_id"`  // ID арендатора-владельца
	DomainID  string        `json:"domain_id"`  // ID домена, к которому привязан ящик
	Address   string        `json:"address"`    // Полный адрес (local@domain)
	Status    MailboxStatus `json:"status"`     // Состояние жизненного цикла
	IsActive  bool          `json:"is_active"`  // Включён ли ящик
	CreatedAt time.Time     `json:"created_at"` // Дата создания
}

// AcceptsMail проверяет, может ли ящик принимать входящую почту
// Проверка домена (VERIFIED) выполняется на уровне выборки из БД
func (m *Mailbox) AcceptsMail() bool {
	return m.IsActive && m.Status == MailboxActive
}
