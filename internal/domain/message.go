package domain

import (
	"time"
)

// Message — входящее письмо, сохранённая копия для одного ящика
// При нескольких получателях каждый ящик получает независимую копию
type Message struct {
	ID          string    `json:"id"`           // Уникальный идентификатор
	MailboxID   string    `json:"mailbox_id"`   // ID почтового ящика
	TenantID    string    `json:"tenant_id"`    // ID арендатора-владельца ящика
	FromAddress string    `json:"from_address"` // Адрес отправителя (не проверяется)
	Subject     string    `json:"subject"`      // Тема письма
	BodyText    string    `json:"body_text"`    // Текстовое содержимое
	BodyHTML    string    `json:"body_html"`    // HTML содержимое
	ReceivedAt  time.Time `json:"received_at"`  // Дата получения
	IsRead      bool      `json:"is_read"`      // Прочитано ли
	IsTrashed   bool      `json:"is_trashed"`   // Перемещено в корзину
	IsArchived  bool      `json:"is_archived"`  // Перемещено в архив
}

// Attachment — вложение к письму
// Запись создаётся только после успешной загрузки файла в хранилище
type Attachment struct {
	ID        string    `json:"id"`         // Уникальный идентификатор
	MessageID string    `json:"message_id"` // ID письма
	MailboxID string    `json:"mailbox_id"` // ID почтового ящика
	TenantID  string    `json:"tenant_id"`  // ID арендатора
	FileName  string    `json:"file_name"`  // Имя файла
	SizeKB    int64     `json:"size_kb"`    // Размер в килобайтах (с округлением вверх)
	MimeType  string    `json:"mime_type"`  // MIME-тип (например, application/pdf)
	Bucket    string    `json:"bucket"`     // Бакет объектного хранилища
	ObjectKey string    `json:"object_key"` // Ключ объекта в бакете
	URL       string    `json:"url"`        // Публичная ссылка на объект
	CreatedAt time.Time `json:"created_at"` // Дата создания записи
}
