package smtp

import (
	"fmt"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/Itsarbaz51/email-server-api/internal/config"
)

// Server — SMTP-сервер для приёма входящих писем
type Server struct {
	server *smtp.Server
	log    *zap.Logger
}

// NewServer создаёт новый SMTP-сервер
func NewServer(
	cfg config.ServerConfig,
	mailCfg config.MailConfig,
	backend *Backend,
	log *zap.Logger,
) *Server {
	server := smtp.NewServer(backend)

	server.Addr = fmt.Sprintf(":%d", cfg.SMTPPort)  // Адрес для прослушивания
	server.Domain = mailCfg.Hostname                // Имя хоста в приветствии
	server.ReadTimeout = cfg.ReadTimeout            // Зависший клиент не держит соединение
	server.WriteTimeout = cfg.WriteTimeout          // Таймаут записи
	server.MaxMessageBytes = mailCfg.MaxEmailSize   // Потолок размера письма
	server.MaxRecipients = mailCfg.MaxRecipients    // Макс. получателей в конверте
	server.AllowInsecureAuth = true                 // Приём без TLS разрешён

	return &Server{
		server: server,
		log:    log,
	}
}

// Start запускает SMTP-сервер
// ListenAndServe блокирует выполнение до остановки
func (s *Server) Start() error {
	s.log.Info("SMTP-сервер запущен",
		zap.String("addr", s.server.Addr),
		zap.String("domain", s.server.Domain),
	)
	return s.server.ListenAndServe()
}

// Close останавливает SMTP-сервер
func (s *Server) Close() error {
	return s.server.Close()
}
