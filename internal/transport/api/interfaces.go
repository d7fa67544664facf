package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Create(ctx context.Context, args service.CreateUserArgs) (*domain.User, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ChangePassword(ctx context.Context, username string, newPassword string) error
	GetAll(ctx context.Context) ([]domain.User, error)
}

type DepositServicer interface {
	Create(ctx context.Context, args service.CreateDepositArgs) (*domain.Deposit, error)
	GetAll(ctx context.Context) ([]domain.Deposit, error)
	Approve(ctx context.Context, id string, reviewer string) (*domain.Deposit, error)
	Decline(ctx context.Context, id string, reviewer string, reason string) (*domain.Deposit, error)
}

type OrderServicer interface {
	Create(ctx context.Context, args service.CreateOrderArgs) (*domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByUsername(ctx context.Context, username string) ([]domain.Order, error)
}
