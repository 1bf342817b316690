package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Itsarbaz51/email-server-api/internal/config"
	"github.com/Itsarbaz51/email-server-api/internal/repository"
	"github.com/Itsarbaz51/email-server-api/internal/service"
	smtpserver "github.com/Itsarbaz51/email-server-api/internal/smtp"
	"github.com/Itsarbaz51/email-server-api/internal/storage"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка загрузки конфигурации:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Ошибка инициализации логгера:", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Подключаемся к базе данных
	db, err := repository.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("ошибка подключения к БД", zap.Error(err))
	}
	defer db.Close()
	logger.Info("подключение к PostgreSQL установлено")

	// Подключаемся к объектному хранилищу
	blobs, err := storage.NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("ошибка подключения к хранилищу", zap.Error(err))
	}
	logger.Info("объектное хранилище готово", zap.String("bucket", cfg.Storage.AttachmentsBucket))

	// Создаём репозитории
	tenantRepo := repository.NewTenantRepository(db.DB)
	domainRepo := repository.NewDomainRepository(db.DB)
	mailboxRepo := repository.NewMailboxRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)
	attachmentRepo := repository.NewAttachmentRepository(db.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(db.DB)

	// Создаём сервисы
	directory := service.NewDirectoryService(mailboxRepo)
	quota := service.NewQuotaService(tenantRepo, subscriptionRepo, domainRepo, mailboxRepo, messageRepo)
	delivery := service.NewDeliveryService(messageRepo, attachmentRepo, blobs, cfg.Mail.KeyPrefix, logger)

	// Создаём и запускаем SMTP-сервер
	backend := smtpserver.NewBackend(directory, quota, delivery, cfg.Mail.MaxEmailSize, logger)
	server := smtpserver.NewServer(cfg.Server, cfg.Mail, backend, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("ошибка SMTP-сервера", zap.Error(err))
		}
	}()

	// Ждём сигнала остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("остановка SMTP-сервера")
	if err := server.Close(); err != nil {
		logger.Error("ошибка остановки сервера", zap.Error(err))
	}
}
