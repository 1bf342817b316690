package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// AttachmentRepository — репозиторий для работы с вложениями
type AttachmentRepository struct {
	db *sql.DB
}

// NewAttachmentRepository создаёт новый репозиторий
func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create создаёт запись вложения
// Вызывается только после успешной загрузки файла в хранилище
func (r *AttachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now()
	}

	query := `
        INSERT INTO attachments
            (id, message_id, mailbox_id, tenant_id, file_name, size_kb, mime_type,
             bucket, object_key, url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := r.db.ExecContext(ctx, query,
		att.ID,
		att.MessageID,
		att.MailboxID,
		att.TenantID,
		att.FileName,
		att.SizeKB,
		att.MimeType,
		att.Bucket,
		att.ObjectKey,
		att.URL,
		att.CreatedAt,
	)

	return err
}

// GetByMessageID возвращает все вложения письма
func (r *AttachmentRepository) GetByMessageID(ctx context.Context, messageID string) ([]*domain.Attachment, error) {
	query := `
        SELECT id, message_id, mailbox_id, tenant_id, file_name, size_kb, mime_type,
               bucket, object_key, url, created_at
        FROM attachments
        WHERE message_id = $1
        ORDER BY created_at
    `

	rows, err := r.db.QueryContext(ctx, query, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		att := &domain.Attachment{}
		err := rows.Scan(
			&att.ID,
			&att.MessageID,
			&att.MailboxID,
			&att.TenantID,
			&att.FileName,
			&att.SizeKB,
			&att.MimeType,
			&att.Bucket,
			&att.ObjectKey,
			&att.URL,
			&att.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attachments, nil
}
