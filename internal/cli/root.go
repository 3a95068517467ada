// Package cli реализует административный CLI сервера MedTrack.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку серверного конфига и подключение к базе данных;
//   - выполнение команд и вывод результата пользователю.
//
// CLI работает напрямую с базой данных, поэтому запускается там же,
// где развёрнут сервер (или с доступом к той же БД).
//
// Точка входа пакета — функция Execute.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ConfigPath — путь к server.yaml (тот же файл, что использует сервер).
	ConfigPath string

	// Cfg — загруженный конфиг. Заполняется в PersistentPreRunE.
	Cfg *config.Config
}

// OpenDB открывает подключение к базе данных из загруженного конфига.
//
// Закрытие соединения — ответственность вызывающей команды.
func (a *App) OpenDB() (*sql.DB, error) {
	if a.Cfg == nil {
		return nil, fmt.Errorf("конфиг не загружен")
	}
	return config.OpenDB(a.Cfg.DB)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE выполняется инициализация состояния приложения:
// загружаются .env и серверный конфиг.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "medtrack",
		Short: "MedTrack CLI — административные команды сервера",
		Long: `MedTrack CLI.

Команды:
  seed         Заполнить базу демо-данными (пользователь + лекарства)
  user-create  Создать пользователя (пароль запрашивается со скрытым вводом)
  version      Версия и дата сборки

Примеры:

Демо-данные:
  medtrack seed

Создание пользователя:
  medtrack user-create --email test@example.com
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env может отсутствовать — это не ошибка
			_ = godotenv.Load()

			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnvOverrides()
			app.Cfg = cfg
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "путь к server.yaml")

	cmd.AddCommand(NewSeedCmd(app))
	cmd.AddCommand(NewUserCreateCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
