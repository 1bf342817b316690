package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// ErrTenantNotFound — арендатор не найден при проверке квоты
var ErrTenantNotFound = errors.New("арендатор не найден")

// Action — проверяемое действие арендатора
// Закрытое перечисление вместо строк, чтобы switch был исчерпывающим
type Action int

const (
	ActionCreateDomain Action = iota // Добавление домена
	ActionCreateMailbox              // Создание ящика
	ActionSendMail                   // Отправка письма
	ActionReceiveMail                // Приём письма
	ActionVerifyDomain               // Подтверждение домена
)

// String возвращает имя действия для логов
func (a Action) String() string {
	switch a {
	case ActionCreateDomain:
		return "createDomain"
	case ActionCreateMailbox:
		return "createMailbox"
	case ActionSendMail:
		return "sendMail"
	case ActionReceiveMail:
		return "receiveMail"
	case ActionVerifyDomain:
		return "verifyDomain"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// DenyReason — типизированная причина отказа
type DenyReason string

const (
	ReasonTrialExpired        DenyReason = "trial_expired"        // Пробный период закончился
	ReasonSubscriptionExpired DenyReason = "subscription_expired" // Подписка истекла
	ReasonLimitExceeded       DenyReason = "limit_exceeded"       // Достигнут лимит тарифа
)

// Decision — результат проверки квоты
// Не сохраняется, живёт только в рамках одного запроса
type Decision struct {
	Allowed bool       // Разрешено ли действие
	Reason  DenyReason // Причина отказа (пустая при разрешении)
}

// Allow — положительное решение
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny — отказ с причиной
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// TenantStore — чтение арендатора
type TenantStore interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

// SubscriptionStore — чтение активной подписки
type SubscriptionStore interface {
	GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Subscription, error)
}

// TenantCounter — счётчики сущностей арендатора
type TenantCounter interface {
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
}

// MessageCounter — счётчики писем ящика
type MessageCounter interface {
	CountReceivedByMailbox(ctx context.Context, mailboxID string) (int64, error)
	CountSentByMailbox(ctx context.Context, mailboxID string) (int64, error)
}

// QuotaService решает, разрешено ли действие арендатору
// Проверка только читает; блокировать ли действие при отказе — решает вызывающий
type QuotaService struct {
	tenants   TenantStore
	subs      SubscriptionStore
	domains   TenantCounter
	mailboxes TenantCounter
	messages  MessageCounter
	now       func() time.Time
}

// NewQuotaService создаёт новый сервис
func NewQuotaService(
	tenants TenantStore,
	subs SubscriptionStore,
	domains TenantCounter,
	mailboxes TenantCounter,
	messages MessageCounter,
) *QuotaService {
	return &QuotaService{
		tenants:   tenants,
		subs:      subs,
		domains:   domains,
		mailboxes: mailboxes,
		messages:  messages,
		now:       time.Now,
	}
}

// Check проверяет действие против подписки и лимитов тарифа
// mailboxID нужен только для действий send/receive, для остальных может быть пустым
//
// Сравнение счётчика с лимитом не атомарно относительно последующей вставки:
// лимит может быть слегка превышен параллельными доставками. Это осознанный
// компромисс, лимиты тарифа — мягкая политика
func (s *QuotaService) Check(ctx context.Context, tenantID, mailboxID string, action Action) (Decision, error) {
	limits, decision, err := s.effectiveLimits(ctx, tenantID)
	if err != nil {
		return Decision{}, err
	}
	if !decision.Allowed {
		return decision, nil
	}

	var count, limit int64
	switch action {
	case ActionCreateDomain:
		limit = limits.MaxDomains
		count, err = s.domains.CountByTenant(ctx, tenantID)
	case ActionCreateMailbox:
		limit = limits.MaxMailboxes
		count, err = s.mailboxes.CountByTenant(ctx, tenantID)
	case ActionSendMail:
		limit = limits.MaxSentEmails
		count, err = s.messages.CountSentByMailbox(ctx, mailboxID)
	case ActionReceiveMail:
		limit = limits.MaxReceivedEmails
		count, err = s.messages.CountReceivedByMailbox(ctx, mailboxID)
	case ActionVerifyDomain:
		// Числового лимита нет, достаточно живой подписки или триала
		return Allow(), nil
	default:
		return Decision{}, fmt.Errorf("неизвестное действие: %s", action)
	}
	if err != nil {
		return Decision{}, err
	}

	if count >= limit {
		return Deny(ReasonLimitExceeded), nil
	}

	return Allow(), nil
}

// effectiveLimits определяет действующие лимиты арендатора
// Без активной подписки лимиты FREE действуют в пределах пробного периода
func (s *QuotaService) effectiveLimits(ctx context.Context, tenantID string) (domain.PlanLimits, Decision, error) {
	sub, err := s.subs.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		return domain.PlanLimits{}, Decision{}, err
	}

	if sub == nil {
		tenant, err := s.tenants.GetByID(ctx, tenantID)
		if err != nil {
			return domain.PlanLimits{}, Decision{}, err
		}
		if tenant == nil {
			return domain.PlanLimits{}, Decision{}, ErrTenantNotFound
		}
		if !tenant.InTrialWindow(s.now()) {
			return domain.PlanLimits{}, Deny(ReasonTrialExpired), nil
		}
		return domain.TrialLimits(), Allow(), nil
	}

	if sub.IsExpiredOn(s.now()) {
		return domain.PlanLimits{}, Deny(ReasonSubscriptionExpired), nil
	}

	return domain.LimitsFor(sub.Plan, sub.BillingCycle), Allow(), nil
}
