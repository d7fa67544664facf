package service

import (
	"context"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
	CreditBalance(ctx context.Context, username string, amount int64) (int64, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}

type DepositRepository interface {
	Create(ctx context.Context, args repoargs.CreateDeposit) (*domain.Deposit, error)
	GetAll(ctx context.Context) ([]domain.Deposit, error)
	// FindByIDForUpdate берет блокировку строки; вызывается только внутри uow-транзакции.
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Deposit, error)
	MarkReviewed(ctx context.Context, args repoargs.ReviewDeposit) (*domain.Deposit, error)
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByUsername(ctx context.Context, username string) ([]domain.Order, error)
}
