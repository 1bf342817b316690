package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Импортируем драйвер PostgreSQL
	_ "github.com/lib/pq"

	"github.com/Itsarbaz51/email-server-api/internal/config"
)

// Соединения обновляются раз в 30 минут, чтобы переживать
// failover и смену адреса за балансировщиком
const connMaxLifetime = 30 * time.Minute

// PostgresDB — обёртка над пулом соединений PostgreSQL
type PostgresDB struct {
	DB *sql.DB
}

// NewPostgresDB открывает пул соединений и проверяет его живость
// Каждая SMTP-сессия дёргает справочник и квоты, поэтому лимиты
// пула задаются конфигурацией, а не значениями по умолчанию
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig) (*PostgresDB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	// sql.Open соединений не открывает, только проверяет параметры
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия БД: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	return &PostgresDB{DB: db}, nil
}

// Close закрывает пул соединений
func (p *PostgresDB) Close() error {
	return p.DB.Close()
}
