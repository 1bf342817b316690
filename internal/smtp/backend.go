package smtp

import (
	"context"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
	"github.com/Itsarbaz51/email-server-api/internal/parser"
	"github.com/Itsarbaz51/email-server-api/internal/service"
)

// Directory разрешает адрес получателя в ящик арендатора
type Directory interface {
	Resolve(ctx context.Context, address string) (*domain.Mailbox, error)
}

// QuotaGate проверяет, разрешено ли арендатору действие
type QuotaGate interface {
	Check(ctx context.Context, tenantID, mailboxID string, action service.Action) (service.Decision, error)
}

// Deliverer сохраняет письмо для одного получателя
type Deliverer interface {
	Deliver(ctx context.Context, mailbox *domain.Mailbox, sender string, msg *parser.Message) (*domain.Message, error)
}

// Backend реализует интерфейс smtp.Backend
// Он создаёт сессии для каждого входящего соединения
type Backend struct {
	directory Directory   // Разрешение адресов получателей
	quota     QuotaGate   // Проверка квот арендаторов
	deliverer Deliverer   // Сохранение писем
	maxSize   int64       // Потолок размера письма в байтах
	log       *zap.Logger // Логгер
}

// NewBackend создаёт новый SMTP-бэкенд
func NewBackend(
	directory Directory,
	quota QuotaGate,
	deliverer Deliverer,
	maxSize int64,
	log *zap.Logger,
) *Backend {
	return &Backend{
		directory: directory,
		quota:     quota,
		deliverer: deliverer,
		maxSize:   maxSize,
		log:       log,
	}
}

// NewSession создаёт новую сессию для входящего соединения
// Вызывается при каждом новом подключении к SMTP-серверу
// Приём почты не требует аутентификации, принимаем всех
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	log := b.log.With(zap.String("remote", c.Conn().RemoteAddr().String()))
	log.Info("новое SMTP-соединение")

	return &Session{
		backend: b,
		log:     log,
	}, nil
}
