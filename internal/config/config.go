package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config — главная структура конфигурации приложения
// Все поля заполняются из переменных окружения
type Config struct {
	Server   ServerConfig   // Настройки SMTP-сервера
	Database DatabaseConfig // Настройки базы данных
	Storage  StorageConfig  // Настройки объектного хранилища
	Mail     MailConfig     // Настройки приёма почты
}

// ServerConfig — настройки SMTP-сервера
type ServerConfig struct {
	SMTPPort     int           `envconfig:"SMTP_PORT" default:"2525"`      // Порт SMTP сервера
	ReadTimeout  time.Duration `envconfig:"SMTP_READ_TIMEOUT" default:"30s"`  // Таймаут чтения
	WriteTimeout time.Duration `envconfig:"SMTP_WRITE_TIMEOUT" default:"30s"` // Таймаут записи
}

// DatabaseConfig — настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`    // Адрес сервера БД
	Port         int    `envconfig:"DB_PORT" default:"5432"`         // Порт БД
	Name         string `envconfig:"DB_NAME" default:"mailsaas"`     // Имя базы данных
	User         string `envconfig:"DB_USER" default:"postgres"`     // Пользователь БД
	Password     string `envconfig:"DB_PASSWORD" required:"true"`    // Пароль БД (обязательный)
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"` // Потолок открытых соединений
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`  // Потолок простаивающих соединений
}

// StorageConfig — настройки S3-совместимого объектного хранилища
type StorageConfig struct {
	Endpoint          string `envconfig:"S3_ENDPOINT" default:"localhost:9000"`         // Адрес хранилища
	AccessKey         string `envconfig:"S3_ACCESS_KEY" required:"true"`                // Ключ доступа
	SecretKey         string `envconfig:"S3_SECRET_KEY" required:"true"`                // Секретный ключ
	UseSSL            bool   `envconfig:"S3_USE_SSL" default:"false"`                   // Использовать ли TLS
	Region            string `envconfig:"S3_REGION" default:"us-east-1"`                // Регион хранилища
	AttachmentsBucket string `envconfig:"ATTACHMENTS_BUCKET" default:"mail-attachments"` // Бакет для вложений
}

// MailConfig — настройки приёма входящей почты
type MailConfig struct {
	Hostname      string `envconfig:"MAIL_HOSTNAME" default:"mail.localhost"`       // Имя хоста в приветствии SMTP
	MaxEmailSize  int64  `envconfig:"MAX_EMAIL_SIZE_BYTES" default:"26214400"`      // Макс. размер письма (25 MiB)
	MaxRecipients int    `envconfig:"MAX_RECIPIENTS" default:"50"`                  // Макс. получателей в одном письме
	KeyPrefix     string `envconfig:"ATTACHMENTS_KEY_PREFIX" default:"attachments"` // Префикс ключей вложений
}

// Load загружает конфигурацию из переменных окружения
// Сначала пытается прочитать файл .env, затем читает переменные окружения
func Load() (*Config, error) {
	// Если файла .env нет — не страшно, будем читать из системных переменных
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
