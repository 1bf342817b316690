package domain

import (
	"time"
)

// DomainStatus — состояние проверки владения доменом
type DomainStatus string

const (
	DomainPending  DomainStatus = "PENDING"  // Владение ещё не подтверждено
	DomainVerified DomainStatus = "VERIFIED" // Владение подтверждено через DNS
)

// MailDomain — DNS-домен, принадлежащий одному арендатору
// Почта принимается только для доменов в состоянии VERIFIED
type MailDomain struct {
	ID        string       `json:"id"`         // Уникальный идентификатор (UUID)
	TenantID  string       `json:"tenant_id"`  // ID арендатора-владельца
	Name      string       `json:"name"`       // Имя домена (example.com)
	Status    DomainStatus `json:"status"`     // Состояние проверки
	CreatedAt time.Time    `json:"created_at"` // Дата добавления
}

// IsVerified проверяет, подтверждено ли владение доменом
func (d *MailDomain) IsVerified() bool {
	return d.Status == DomainVerified
}
