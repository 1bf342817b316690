package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
	"github.com/Itsarbaz51/email-server-api/internal/parser"
	"github.com/Itsarbaz51/email-server-api/internal/storage"
)

// MessageCreator — запись письма в БД
type MessageCreator interface {
	Create(ctx context.Context, msg *domain.Message) error
}

// AttachmentCreator — запись вложения в БД
type AttachmentCreator interface {
	Create(ctx context.Context, att *domain.Attachment) error
}

// BlobUploader — загрузка содержимого вложения в объектное хранилище
type BlobUploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*storage.Locator, error)
}

// DeliveryService сохраняет разобранное письмо для одного получателя
// Каждый получатель обрабатывается независимо: ошибка одной доставки
// не откатывает доставки другим ящикам
type DeliveryService struct {
	messages    MessageCreator
	attachments AttachmentCreator
	blobs       BlobUploader
	keyPrefix   string
	log         *zap.Logger
}

// NewDeliveryService создаёт новый сервис
func NewDeliveryService(
	messages MessageCreator,
	attachments AttachmentCreator,
	blobs BlobUploader,
	keyPrefix string,
	log *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		messages:    messages,
		attachments: attachments,
		blobs:       blobs,
		keyPrefix:   keyPrefix,
		log:         log,
	}
}

// Deliver создаёт копию письма в ящике и сохраняет его вложения
// Ошибка записи письма отменяет всю доставку этому получателю;
// ошибка отдельного вложения логируется и пропускается, остальные
// вложения и само письмо при этом сохраняются
func (s *DeliveryService) Deliver(ctx context.Context, mailbox *domain.Mailbox, sender string, msg *parser.Message) (*domain.Message, error) {
	row := &domain.Message{
		MailboxID:   mailbox.ID,
		TenantID:    mailbox.TenantID,
		FromAddress: sender,
		Subject:     msg.Subject,
		BodyText:    msg.TextBody,
		BodyHTML:    msg.HTMLBody,
	}

	if err := s.messages.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("ошибка сохранения письма для %s: %w", mailbox.Address, err)
	}

	// Загрузки вложений независимы друг от друга — выполняем параллельно
	var wg sync.WaitGroup
	for _, att := range msg.Attachments {
		wg.Add(1)
		go func(att parser.Attachment) {
			defer wg.Done()
			s.storeAttachment(ctx, row, att)
		}(att)
	}
	wg.Wait()

	return row, nil
}

// storeAttachment загружает одно вложение и создаёт его запись
// Запись появляется только после успешной загрузки: битых ссылок не бывает
func (s *DeliveryService) storeAttachment(ctx context.Context, msg *domain.Message, att parser.Attachment) {
	key := storage.ObjectKey(s.keyPrefix, att.FileName)

	locator, err := s.blobs.Put(ctx, key, att.Content, att.ContentType)
	if err != nil {
		s.log.Warn("не удалось загрузить вложение, пропускаем",
			zap.String("message_id", msg.ID),
			zap.String("file_name", att.FileName),
			zap.Error(err),
		)
		return
	}

	row := &domain.Attachment{
		MessageID: msg.ID,
		MailboxID: msg.MailboxID,
		TenantID:  msg.TenantID,
		FileName:  att.FileName,
		SizeKB:    sizeKB(len(att.Content)),
		MimeType:  att.ContentType,
		Bucket:    locator.Bucket,
		ObjectKey: locator.Key,
		URL:       locator.URL,
	}

	if err := s.attachments.Create(ctx, row); err != nil {
		// Файл уже в хранилище, но запись не создалась — вложение потеряно для писем,
		// само письмо при этом доставлено
		s.log.Warn("не удалось сохранить запись вложения",
			zap.String("message_id", msg.ID),
			zap.String("object_key", locator.Key),
			zap.Error(err),
		)
	}
}

// sizeKB переводит байты в килобайты с округлением вверх
func sizeKB(n int) int64 {
	return int64((n + 1023) / 1024)
}
