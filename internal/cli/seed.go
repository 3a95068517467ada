package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/repository"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// данные для демо-наполнения базы
const (
	seedEmail    = "james@james.com"
	seedPassword = "jamesjames"
)

var seedMedicines = []struct {
	name, dosage, frequency string
}{
	{"Viscotin", "2 mg", "2 x day"},
	{"Brufen", "150 mg", "1 x day"},
	{"Vigantol", "1 mg", "1 x day"},
}

// NewSeedCmd создаёт CLI-команду для демо-наполнения базы данных.
//
// Команда применяет миграции (если они включены в конфиге), создаёт
// демо-пользователя и несколько записей о лекарствах для него.
// Повторный запуск на уже заполненной базе завершается ошибкой
// "already exists" и ничего не дублирует.
//
// Пример использования:
//
//	medtrack seed
func NewSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Заполнить базу демо-данными",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if app.Cfg.Migrations.Enabled {
				if err := config.MigrateUp(db, app.Cfg.Migrations.Path); err != nil {
					return err
				}
			}

			repos := service.Repositories{
				Users:     repository.NewUsersRepository(db),
				Medicines: repository.NewMedicinesRepository(db),
			}
			svc := service.NewServices(repos, app.Cfg)

			ctx := cmd.Context()

			userID, err := svc.Auth.Register(ctx, seedEmail, seedPassword)
			if err != nil {
				if errors.Is(err, serr.ErrAlreadyExists) {
					return fmt.Errorf("пользователь %s уже существует — база уже заполнена", seedEmail)
				}
				return err
			}

			for _, m := range seedMedicines {
				if _, err := svc.Medicines.Add(ctx, userID, m.name, m.dosage, m.frequency); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seed complete: user=%s medicines=%d\n", seedEmail, len(seedMedicines))
			return nil
		},
	}
}
