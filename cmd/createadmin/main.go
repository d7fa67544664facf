package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	// драйверы миграций, как и в основном сервере.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	_ "github.com/golang-migrate/migrate/v4/source/file"       //nolint:revive

	"github.com/fsdevblog/snow-topup/internal/config"
	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/logger"
	"github.com/fsdevblog/snow-topup/internal/repository/pgrepo"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/internal/service/psswd"
)

// Сидер первого администратора. Запускается с сервера руками, через HTTP не
// экспонируется. Креды берутся из ADMIN_USERNAME/ADMIN_PASSWORD либо с консоли.
func main() {
	conf := config.MustLoadConfig()
	l := logger.New(os.Stdout)

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")

	var promptErr error
	if username == "" {
		username, promptErr = prompt("Admin username: ")
		if promptErr != nil {
			l.WithError(promptErr).Fatal("reading username")
		}
	}
	if password == "" {
		password, promptErr = prompt("Admin password: ")
		if promptErr != nil {
			l.WithError(promptErr).Fatal("reading password")
		}
	}

	if username == "" || password == "" {
		l.Fatal("username & password required")
	}

	ctx := context.Background()
	conn, connErr := pgrepo.Connect(ctx, conf.MigrationsDir, conf.DatabaseDSN, l)
	if connErr != nil {
		l.WithError(connErr).Fatal("connecting to database")
	}
	defer conn.Close()

	hasher := psswd.New(conf.BcryptCost)
	passwordHash, hashErr := hasher.HashPassword(password)
	if hashErr != nil {
		l.WithError(hashErr).Fatal("hashing password")
	}

	userRepo := pgrepo.NewUserRepository(conn)
	user, createErr := userRepo.Create(ctx, repoargs.CreateUser{
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        domain.Roles{domain.RoleAdmin},
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			l.Infof("user exists: %s", username)
			return
		}
		l.WithError(createErr).Fatal("creating admin")
	}

	l.Infof("admin created: %s", user.Username)
}

func prompt(question string) (string, error) {
	fmt.Print(question) //nolint:forbidigo
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading stdin: %s", err.Error())
	}
	return strings.TrimSpace(answer), nil
}
