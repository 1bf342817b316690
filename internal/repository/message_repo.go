package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// MessageRepository — репозиторий для работы с входящими письмами
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository создаёт новый репозиторий
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create создаёт запись входящего письма
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	// Генерируем ID, если не задан
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	// Устанавливаем время получения
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	query := `
        INSERT INTO received_messages
            (id, mailbox_id, tenant_id, from_address, subject, body_text, body_html,
             received_at, is_read, is_trashed, is_archived)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.MailboxID,
		msg.TenantID,
		msg.FromAddress,
		msg.Subject,
		msg.BodyText,
		msg.BodyHTML,
		msg.ReceivedAt,
		msg.IsRead,
		msg.IsTrashed,
		msg.IsArchived,
	)

	return err
}

// GetByID находит письмо по ID
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `
        SELECT id, mailbox_id, tenant_id, from_address, subject, body_text, body_html,
               received_at, is_read, is_trashed, is_archived
        FROM received_messages
        WHERE id = $1
    `

	msg := &domain.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&msg.MailboxID,
		&msg.TenantID,
		&msg.FromAddress,
		&msg.Subject,
		&msg.BodyText,
		&msg.BodyHTML,
		&msg.ReceivedAt,
		&msg.IsRead,
		&msg.IsTrashed,
		&msg.IsArchived,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// CountReceivedByMailbox возвращает количество полученных писем в ящике
func (r *MessageRepository) CountReceivedByMailbox(ctx context.Context, mailboxID string) (int64, error) {
	query := `SELECT COUNT(*) FROM received_messages WHERE mailbox_id = $1`

	var count int64
	err := r.db.QueryRowContext(ctx, query, mailboxID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountSentByMailbox возвращает количество отправленных писем из ящика
// Отправка писем вне зоны ответственности сервиса, но лимит проверяется здесь же
func (r *MessageRepository) CountSentByMailbox(ctx context.Context, mailboxID string) (int64, error) {
	query := `SELECT COUNT(*) FROM sent_messages WHERE mailbox_id = $1`

	var count int64
	err := r.db.QueryRowContext(ctx, query, mailboxID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
