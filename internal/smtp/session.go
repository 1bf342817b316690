package smtp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
	"github.com/Itsarbaz51/email-server-api/internal/parser"
	"github.com/Itsarbaz51/email-server-api/internal/service"
)

// Ответы протокола SMTP
var (
	errSMTPSeq = &smtp.SMTPError{
		Code:         503,
		EnhancedCode: smtp.EnhancedCode{5, 5, 1},
		Message:      "Invalid command sequence",
	}
	errSMTPTooLarge = &smtp.SMTPError{
		Code:         552,
		EnhancedCode: smtp.EnhancedCode{5, 3, 4},
		Message:      "Message size exceeds limit",
	}
	errSMTPQuotaFull = &smtp.SMTPError{
		Code:         452,
		EnhancedCode: smtp.EnhancedCode{4, 2, 2},
		Message:      "Recipient quota exceeded",
	}
	errSMTPExpired = &smtp.SMTPError{
		Code:         550,
		EnhancedCode: smtp.EnhancedCode{5, 7, 1},
		Message:      "Recipient account expired",
	}
	errSMTPProcess = &smtp.SMTPError{
		Code:         451,
		EnhancedCode: smtp.EnhancedCode{4, 3, 0},
		Message:      "Failed to process message",
	}
	errSMTPInternal = &smtp.SMTPError{
		Code:         451,
		EnhancedCode: smtp.EnhancedCode{4, 3, 0},
		Message:      "Temporary server error",
	}
)

// Session обрабатывает одну SMTP-сессию (одно соединение)
// Команды соединения приходят строго по очереди, поэтому
// состояние сессии не требует синхронизации
type Session struct {
	backend   *Backend          // Ссылка на бэкенд
	log       *zap.Logger       // Логгер с адресом клиента
	hasSender bool              // Была ли команда MAIL FROM
	from      string            // Адрес отправителя конверта (пустой для bounce)
	rcpts     []*domain.Mailbox // Разрешённые ящики получателей
	seen      map[string]bool   // ID ящиков для дедупликации получателей
}

// AuthPlain обрабатывает PLAIN-аутентификацию
// Аутентификация не требуется для приёма писем
func (s *Session) AuthPlain(username, password string) error {
	return nil
}

// Mail вызывается, когда клиент сообщает адрес отправителя (MAIL FROM)
// Синтаксис адреса проверяет сама библиотека до этого вызова; пустая
// строка означает нулевой обратный путь <>, так приходят bounce-письма
// Повторный MAIL FROM перезаписывает отправителя
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	s.log.Info("MAIL FROM", zap.String("from", from))
	s.hasSender = true
	s.from = extractEmail(from)
	return nil
}

// Rcpt вызывается для каждого получателя (RCPT TO)
// Неизвестный адрес не отклоняет команду — он просто исключается
// из дальнейшей доставки; отказ по квоте отклоняет получателя
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	if !s.hasSender {
		return errSMTPSeq
	}

	address := strings.ToLower(extractEmail(to))
	s.log.Info("RCPT TO", zap.String("to", address))

	ctx := context.Background()

	mailbox, err := s.backend.directory.Resolve(ctx, address)
	if errors.Is(err, service.ErrMailboxNotFound) {
		// Ящика нет или домен не подтверждён: принимаем команду,
		// но в доставке адрес участвовать не будет
		s.log.Info("ящик не найден, получатель пропущен", zap.String("to", address))
		service.GlobalStats.IncSkippedRecipient()
		return nil
	}
	if err != nil {
		s.log.Error("ошибка разрешения адреса", zap.String("to", address), zap.Error(err))
		return errSMTPInternal
	}

	// Дубликат получателя в одном конверте даёт одну копию письма
	if s.seen[mailbox.ID] {
		return nil
	}

	decision, err := s.backend.quota.Check(ctx, mailbox.TenantID, mailbox.ID, service.ActionReceiveMail)
	if err != nil {
		s.log.Error("ошибка проверки квоты", zap.String("to", address), zap.Error(err))
		return errSMTPInternal
	}
	if !decision.Allowed {
		s.log.Info("получатель отклонён по квоте",
			zap.String("to", address),
			zap.String("reason", string(decision.Reason)),
		)
		service.GlobalStats.IncRejectedRecipient()
		if decision.Reason == service.ReasonLimitExceeded {
			return errSMTPQuotaFull
		}
		return errSMTPExpired
	}

	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[mailbox.ID] = true
	s.rcpts = append(s.rcpts, mailbox)
	return nil
}

// Data вызывается, когда клиент передаёт содержимое письма
// Размер контролируется при чтении: превышение потолка обрывает
// транзакцию, и ничего из буфера не сохраняется
func (s *Session) Data(r io.Reader) error {
	if !s.hasSender {
		return errSMTPSeq
	}

	maxSize := s.backend.maxSize

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, maxSize+1))
	if err != nil {
		s.log.Warn("ошибка чтения данных письма", zap.Error(err))
		return errSMTPInternal
	}
	if n > maxSize {
		s.log.Warn("письмо превышает лимит размера", zap.Int64("limit", maxSize))
		service.GlobalStats.IncOversize()
		return errSMTPTooLarge
	}
	if n == 0 {
		return errSMTPProcess
	}

	// Разбираем письмо только после полного приёма
	msg, err := parser.Parse(buf.Bytes())
	if err != nil {
		// Целиком нечитаемое письмо — временный сбой, пусть отправитель повторит
		s.log.Warn("ошибка разбора письма", zap.Error(err))
		service.GlobalStats.IncParseFailure()
		return errSMTPProcess
	}

	// Для bounce-писем конверт пуст, берём адрес из заголовка From
	sender := s.from
	if sender == "" {
		sender = msg.From
	}

	s.log.Info("письмо принято",
		zap.String("from", sender),
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(s.rcpts)),
		zap.Int("attachments", len(msg.Attachments)),
	)

	// Сохраняем копию для каждого разрешённого получателя
	// Ошибка одной доставки не мешает остальным и не роняет транзакцию:
	// повторная отправка продублировала бы уже доставленные копии
	ctx := context.Background()
	for _, mailbox := range s.rcpts {
		if _, err := s.backend.deliverer.Deliver(ctx, mailbox, sender, msg); err != nil {
			s.log.Error("ошибка доставки получателю",
				zap.String("mailbox", mailbox.Address),
				zap.Error(err),
			)
			continue
		}
		service.GlobalStats.IncDelivered()
	}

	service.GlobalStats.IncAccepted()
	return nil
}

// Reset вызывается для сброса сессии
func (s *Session) Reset() {
	s.hasSender = false
	s.from = ""
	s.rcpts = nil
	s.seen = nil
}

// Logout вызывается при завершении сессии
func (s *Session) Logout() error {
	s.log.Info("SMTP-сессия завершена")
	return nil
}

// extractEmail извлекает email из строки вида "Name <email@domain.com>"
func extractEmail(s string) string {
	if start := strings.Index(s, "<"); start != -1 {
		if end := strings.Index(s, ">"); end != -1 && end > start {
			return strings.TrimSpace(s[start+1 : end])
		}
	}
	return strings.TrimSpace(s)
}
