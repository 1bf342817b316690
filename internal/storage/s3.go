// Package storage — клиент S3-совместимого объектного хранилища для вложений.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Itsarbaz51/email-server-api/internal/config"
)

// whitespaceRe — пробельные последовательности в именах файлов
var whitespaceRe = regexp.MustCompile(`\s+`)

// Locator — долговечная ссылка на сохранённый объект
type Locator struct {
	Bucket string // Бакет хранилища
	Key    string // Ключ объекта
	URL    string // Публичная ссылка
}

// BlobStore — клиент объектного хранилища
type BlobStore struct {
	client *minio.Client
	config config.StorageConfig
}

// NewBlobStore создаёт клиент хранилища и гарантирует наличие бакета вложений
func NewBlobStore(ctx context.Context, cfg config.StorageConfig) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента хранилища: %w", err)
	}

	store := &BlobStore{
		client: client,
		config: cfg,
	}

	// Создаём бакет, если его ещё нет
	if err := store.ensureBucket(ctx, cfg.AttachmentsBucket); err != nil {
		return nil, err
	}

	return store, nil
}

// ensureBucket создаёт бакет, если он не существует
func (s *BlobStore) ensureBucket(ctx context.Context, name string) error {
	exists, err := s.client.BucketExists(ctx, name)
	if err != nil {
		return fmt.Errorf("ошибка проверки бакета %s: %w", name, err)
	}
	if exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, name, minio.MakeBucketOptions{Region: s.config.Region})
	if err != nil {
		return fmt.Errorf("ошибка создания бакета %s: %w", name, err)
	}
	return nil
}

// Put загружает объект в бакет вложений и возвращает локатор
func (s *BlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (*Locator, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := s.config.AttachmentsBucket
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки %s/%s: %w", bucket, key, err)
	}

	return &Locator{
		Bucket: bucket,
		Key:    key,
		URL:    s.objectURL(bucket, key),
	}, nil
}

// objectURL строит публичную ссылку на объект
func (s *BlobStore) objectURL(bucket, key string) string {
	scheme := "http"
	if s.config.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.config.Endpoint, bucket, key)
}

// ObjectKey генерирует уникальный ключ объекта
// Формат: prefix/<unix millis>-<uuid>-<имя файла без пробелов>
func ObjectKey(prefix, filename string) string {
	clean := whitespaceRe.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%d-%s-%s", prefix, time.Now().UnixMilli(), uuid.New().String(), clean)
}
