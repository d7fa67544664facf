package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/internal/service/mocks"
	"github.com/fsdevblog/snow-topup/pkg/uow"
	uowmocks "github.com/fsdevblog/snow-topup/pkg/uow/mocks"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockUOW       *uowmocks.MockUOW
	mockOrderRepo *mocks.MockOrderRepository
	orderService  *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	orderService, servErr := NewOrderService(s.mockUOW)
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TestCreate() {
	args := CreateOrderArgs{
		Username:    "alice",
		PackageID:   "p60",
		PackageName: "60 diamonds",
		Price:       1900,
		Login:       "alice#1234",
		Note:        "asap",
	}

	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, createArgs repoargs.CreateOrder) (*domain.Order, error) {
			_, parseErr := uuid.Parse(createArgs.ID)
			s.Require().NoError(parseErr)

			s.Equal(args.Username, createArgs.Username)
			s.Equal(args.PackageID, createArgs.PackageID)
			s.Equal(args.PackageName, createArgs.PackageName)
			s.Equal(args.Price, createArgs.Price)
			s.Equal(args.Login, createArgs.Login)
			s.Equal(args.Note, createArgs.Note)

			return &domain.Order{
				ID:          createArgs.ID,
				CreatedAt:   time.Now(),
				Username:    createArgs.Username,
				PackageID:   createArgs.PackageID,
				PackageName: createArgs.PackageName,
				Price:       createArgs.Price,
				Login:       createArgs.Login,
				Note:        createArgs.Note,
				Status:      domain.OrderStatusPending,
			}, nil
		})

	order, err := s.orderService.Create(s.T().Context(), args)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusPending, order.Status)
}

func (s *OrderServiceTestSuite) TestGetAll() {
	expected := []domain.Order{
		{ID: uuid.NewString(), Username: "alice"},
		{ID: uuid.NewString(), Username: "bob"},
	}

	s.mockOrderRepo.EXPECT().GetAll(gomock.Any()).Return(expected, nil)

	orders, err := s.orderService.GetAll(s.T().Context())
	s.Require().NoError(err)
	s.Equal(expected, orders)
}

func (s *OrderServiceTestSuite) TestGetByUsername() {
	expected := []domain.Order{
		{ID: uuid.NewString(), Username: "alice"},
	}

	s.mockOrderRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(expected, nil)
	s.mockOrderRepo.EXPECT().GetByUsername(gomock.Any(), "bob").Return([]domain.Order{}, nil)

	orders, err := s.orderService.GetByUsername(s.T().Context(), "alice")
	s.Require().NoError(err)
	s.Equal(expected, orders)

	empty, err := s.orderService.GetByUsername(s.T().Context(), "bob")
	s.Require().NoError(err)
	s.Empty(empty)
}
