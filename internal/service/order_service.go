package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
	}, nil
}

type CreateOrderArgs struct {
	Username    string
	PackageID   string
	PackageName string
	Price       int64
	Login       string
	Note        string
}

// Create создает заказ в статусе pending. Дальнейшая судьба заказа решается
// внешним процессом фулфилмента.
func (s *OrderService) Create(ctx context.Context, args CreateOrderArgs) (*domain.Order, error) {
	order, err := s.orderRepo.Create(ctx, repoargs.CreateOrder{
		ID:          uuid.NewString(),
		Username:    args.Username,
		PackageID:   args.PackageID,
		PackageName: args.PackageName,
		Price:       args.Price,
		Login:       args.Login,
		Note:        args.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return order, nil
}

// GetAll возвращает все заказы, самые новые - первыми.
func (s *OrderService) GetAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// GetByUsername возвращает заказы одного юзера, самые новые - первыми.
func (s *OrderService) GetByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	orders, err := s.orderRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
