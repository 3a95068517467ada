// Package main содержит точку входа серверного приложения MedTrack.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - инициализацию подключения к базе данных и применение миграций;
//   - создание репозиториев, сервисов, менеджера сессий и HTTP-обработчиков;
//   - настройку и запуск сервера с заданными таймаутами (TLS опционален);
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/repository"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/session"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/web"
	"github.com/IvanChernomyrdin/go-medtrack/internal/shared/logger"
)

func main() {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		// без валидного конфига (в том числе без SESSION_SECRET) не стартуем
		sugar.Fatal(err)
	}
	cfg.ApplyEnvOverrides()

	// подключаем базу данных
	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Close()

	// применяем миграции
	if cfg.Migrations.Enabled {
		if err := config.MigrateUp(db, cfg.Migrations.Path); err != nil {
			sugar.Fatal(err)
		}
		sugar.Info("migrations applied successfully")
	}

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	medicinesRepo := repository.NewMedicinesRepository(db)
	// складываем в репозиторий
	repos := service.Repositories{
		Users:     usersRepo,
		Medicines: medicinesRepo,
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)
	// создаём менеджер сессий
	sess := session.NewManager(cfg.Session, cfg.TLS.Enabled)
	// создаём хандлер
	handler := web.NewHandler(svc, httpLogger, sess)
	// создаём роутер
	router := web.NewRouter(handler)
	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
