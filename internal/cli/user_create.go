package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/repository"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
)

// NewUserCreateCmd создаёт CLI-команду для регистрации пользователя.
//
// Пароль запрашивается интерактивно со скрытым вводом, чтобы не
// оставался в истории shell.
//
// Пример использования:
//
//	medtrack user-create --email test@example.com
func NewUserCreateCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "user-create",
		Short: "Создать пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			db, err := app.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			repos := service.Repositories{
				Users:     repository.NewUsersRepository(db),
				Medicines: repository.NewMedicinesRepository(db),
			}
			svc := service.NewServices(repos, app.Cfg)

			userID, err := svc.Auth.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user created: id=%s email=%s\n", userID, email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email нового пользователя")
	cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword читает пароль интерактивно из терминала со скрытым вводом.
//
// Если stdin не является терминалом, возвращается ошибка — пароль
// через pipe не принимаем.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
