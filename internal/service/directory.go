package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// ErrMailboxNotFound — адрес не разрешился в активный ящик
// Сюда же попадают ящики на неподтверждённых доменах
var ErrMailboxNotFound = errors.New("почтовый ящик не найден")

// MailboxFinder — выборка ящика по адресу
type MailboxFinder interface {
	FindActiveByAddress(ctx context.Context, address string) (*domain.Mailbox, error)
}

// DirectoryService разрешает адрес получателя в ящик арендатора
// Вызывается на каждый RCPT TO, поэтому только читает
type DirectoryService struct {
	mailboxes MailboxFinder
}

// NewDirectoryService создаёт новый сервис
func NewDirectoryService(mailboxes MailboxFinder) *DirectoryService {
	return &DirectoryService{mailboxes: mailboxes}
}

// Resolve находит активный ящик по адресу
// Адрес нормализуется к нижнему регистру; если ящика нет или домен
// не подтверждён — возвращается ErrMailboxNotFound
func (s *DirectoryService) Resolve(ctx context.Context, address string) (*domain.Mailbox, error) {
	address = strings.ToLower(strings.TrimSpace(address))

	mailbox, err := s.mailboxes.FindActiveByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if mailbox == nil {
		return nil, ErrMailboxNotFound
	}

	return mailbox, nil
}
