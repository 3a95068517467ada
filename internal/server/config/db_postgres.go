// Package config содержит также инициализацию подключения
// к базе данных сервера.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Подключение возвращается вызывающему коду и передаётся дальше
// в репозитории явно, без глобальных переменных.
package config

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает подключение к базе данных по настройкам из конфига
// и проверяет его доступность.
//
// Закрытие соединения — ответственность вызывающего кода.
func OpenDB(cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("открытие подключения к бд: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка подключения к бд: %w", err)
	}

	return db, nil
}

// MigrateUp применяет миграции к открытому подключению.
//
// path — источник миграций, например "file://migrations/postgres".
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func MigrateUp(db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("создание драйвера миграций: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("создание миграций: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("применение миграций: %w", err)
	}
	return nil
}
