package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type AppServices struct {
	UserService    *UserService
	DepositService *DepositService
	OrderService   *OrderService
}

type FactoryArgs struct {
	Psswd          PasswordHasher
	JWTSecret      []byte
	JWTTokenExpire time.Duration
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, args.Psswd, args.JWTSecret, args.JWTTokenExpire)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	depositService, depositServiceErr := NewDepositService(unitOfWork)
	if depositServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", depositServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	return &AppServices{
		UserService:    userService,
		DepositService: depositService,
		OrderService:   orderService,
	}, nil
}
