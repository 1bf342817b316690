// Package parser разбирает сырые RFC 5322 письма с поддержкой MIME multipart.
package parser

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

const (
	// DefaultSubject подставляется, когда заголовок Subject отсутствует
	DefaultSubject = "(No Subject)"
	// DefaultContentType подставляется вложениям без объявленного типа
	DefaultContentType = "application/octet-stream"
)

// Message — разобранное письмо
type Message struct {
	From        string       // Адрес из заголовка From (может быть пустым)
	Subject     string       // Тема письма
	TextBody    string       // Текстовое содержимое (пустая строка, если нет)
	HTMLBody    string       // HTML содержимое (пустая строка, если нет)
	Attachments []Attachment // Вложения в порядке следования частей
}

// Attachment — вложение из MIME-части письма
type Attachment struct {
	FileName    string // Имя файла
	ContentType string // Объявленный MIME-тип
	Content     []byte // Декодированное содержимое
}

// Parse разбирает письмо целиком за один вызов
// Разбор чистый и без состояния; битое письмо возвращает ошибку,
// частично разобранные данные наружу не отдаются
func Parse(raw []byte) (*Message, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора письма: %w", err)
	}

	result := &Message{
		From:    extractAddress(msg.Header.Get("From")),
		Subject: decodeHeader(msg.Header.Get("Subject")),
	}
	if result.Subject == "" {
		result.Subject = DefaultSubject
	}

	encoding := msg.Header.Get("Content-Transfer-Encoding")

	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		// Письмо без Content-Type считаем простым текстом
		body, err := readBody(msg.Body, encoding)
		if err != nil {
			return nil, err
		}
		result.TextBody = string(body)
		return result, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Нечитаемый Content-Type тоже трактуем как простой текст
		body, readErr := readBody(msg.Body, encoding)
		if readErr != nil {
			return nil, readErr
		}
		result.TextBody = string(body)
		return result, nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("multipart-письмо без boundary")
		}
		if err := parseMultipart(msg.Body, boundary, result); err != nil {
			return nil, fmt.Errorf("ошибка разбора multipart: %w", err)
		}
		return result, nil
	}

	body, err := readBody(msg.Body, encoding)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(mediaType, "text/html") {
		result.HTMLBody = string(body)
	} else {
		result.TextBody = string(body)
	}

	return result, nil
}

// parseMultipart разбирает части multipart-письма
// Текстовые части попадают в тело, остальные — во вложения
func parseMultipart(body io.Reader, boundary string, result *Message) error {
	mr := multipart.NewReader(body, boundary)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("ошибка чтения части: %w", err)
		}

		// Часть без Content-Type (или с нечитаемым) не пропускается:
		// тип подставится по disposition ниже
		var mediaType string
		var params map[string]string
		if partType := part.Header.Get("Content-Type"); partType != "" {
			mediaType, params, err = mime.ParseMediaType(partType)
			if err != nil {
				mediaType, params = "", nil
			}
		}

		// Вложенный multipart разбираем рекурсивно
		if strings.HasPrefix(mediaType, "multipart/") {
			nested := params["boundary"]
			if nested == "" {
				continue
			}
			if err := parseMultipart(part, nested, result); err != nil {
				return err
			}
			continue
		}

		disposition := part.Header.Get("Content-Disposition")
		isAttachment := strings.HasPrefix(disposition, "attachment")

		content, err := readPartContent(part)
		if err != nil {
			return fmt.Errorf("ошибка чтения содержимого части: %w", err)
		}

		switch {
		case isAttachment:
			result.Attachments = append(result.Attachments, Attachment{
				FileName:    extractFilename(part, params),
				ContentType: attachmentType(mediaType),
				Content:     content,
			})
		case strings.HasPrefix(mediaType, "text/plain"):
			if result.TextBody == "" {
				result.TextBody = string(content)
			}
		case strings.HasPrefix(mediaType, "text/html"):
			if result.HTMLBody == "" {
				result.HTMLBody = string(content)
			}
		// Часть без disposition, но с именем файла — тоже вложение
		case hasFilename(part, params):
			result.Attachments = append(result.Attachments, Attachment{
				FileName:    extractFilename(part, params),
				ContentType: attachmentType(mediaType),
				Content:     content,
			})
		// Часть без типа и имени по RFC 2045 считается text/plain
		case mediaType == "":
			if result.TextBody == "" {
				result.TextBody = string(content)
			}
		}
	}

	return nil
}

// readBody читает тело письма целиком и снимает transfer-кодировку
func readBody(body io.Reader, encoding string) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела письма: %w", err)
	}
	return decodeTransfer(raw, encoding)
}

// readPartContent читает содержимое части с учётом Content-Transfer-Encoding
// quoted-printable стандартный multipart.Reader декодирует сам
func readPartContent(part *multipart.Part) ([]byte, error) {
	raw, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}
	return decodeTransfer(raw, part.Header.Get("Content-Transfer-Encoding"))
}

// decodeTransfer декодирует содержимое из transfer-кодировки
func decodeTransfer(raw []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		cleaned := strings.NewReplacer("\r", "", "\n", "").Replace(string(raw))
		decoded, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			// Пробуем вариант без выравнивания
			decoded, err = base64.RawStdEncoding.DecodeString(cleaned)
			if err != nil {
				return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
			}
		}
		return decoded, nil
	case "quoted-printable":
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("ошибка декодирования quoted-printable: %w", err)
		}
		return decoded, nil
	default:
		return raw, nil
	}
}

// extractFilename извлекает имя файла вложения
// Сначала Content-Disposition, затем параметр name из Content-Type
func extractFilename(part *multipart.Part, params map[string]string) string {
	if fn := part.FileName(); fn != "" {
		return decodeHeader(fn)
	}
	if name, ok := params["name"]; ok && name != "" {
		return decodeHeader(name)
	}
	return "attachment"
}

// hasFilename проверяет, объявлено ли у части имя файла
func hasFilename(part *multipart.Part, params map[string]string) bool {
	return part.FileName() != "" || params["name"] != ""
}

// attachmentType нормализует MIME-тип вложения
func attachmentType(mediaType string) string {
	if mediaType == "" {
		return DefaultContentType
	}
	return mediaType
}

// decodeHeader декодирует MIME-encoded заголовок (=?UTF-8?B?...?=)
func decodeHeader(s string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}

// extractAddress извлекает адрес из строки вида "Name <email@domain.com>"
func extractAddress(s string) string {
	if s == "" {
		return ""
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		// Падаем обратно на грубое извлечение из угловых скобок
		if start := strings.Index(s, "<"); start != -1 {
			if end := strings.Index(s, ">"); end != -1 && end > start {
				return strings.TrimSpace(s[start+1 : end])
			}
		}
		return strings.TrimSpace(s)
	}
	return addr.Address
}
