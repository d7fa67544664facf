package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type DepositService struct {
	uow         uow.UOW
	depositRepo DepositRepository
}

func NewDepositService(u uow.UOW) (*DepositService, error) {
	depositRepo, err := uow.GetRepositoryAs[DepositRepository](u, uow.RepositoryName(repoargs.DepositRepoName))
	if err != nil {
		return nil, err
	}
	return &DepositService{
		uow:         u,
		depositRepo: depositRepo,
	}, nil
}

type CreateDepositArgs struct {
	Username  string
	Amount    int64
	Bank      string
	Reference string
}

// Create создает заявку на пополнение в статусе pending. Сумма обязана быть
// положительной, иначе вернется domain.ErrInvalidAmount.
func (s *DepositService) Create(ctx context.Context, args CreateDepositArgs) (*domain.Deposit, error) {
	if args.Amount <= 0 {
		return nil, fmt.Errorf("creating deposit: %w", domain.ErrInvalidAmount)
	}

	deposit, err := s.depositRepo.Create(ctx, repoargs.CreateDeposit{
		ID:        uuid.NewString(),
		Username:  args.Username,
		Amount:    args.Amount,
		Bank:      args.Bank,
		Reference: args.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("creating deposit: %w", err)
	}
	return deposit, nil
}

// GetAll возвращает все заявки, самые новые - первыми.
func (s *DepositService) GetAll(ctx context.Context) ([]domain.Deposit, error) {
	deposits, err := s.depositRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return deposits, nil
}

// Approve подтверждает заявку и зачисляет ее сумму на баланс владельца. Смена
// статуса и зачисление выполняются одной транзакцией: заявка читается под
// блокировкой строки, поэтому повторное подтверждение того же id вернет
// domain.ErrAlreadyProcessed. Возвращает domain.ErrRecordNotFound для
// неизвестного id.
func (s *DepositService) Approve(ctx context.Context, id string, reviewer string) (*domain.Deposit, error) {
	var reviewed *domain.Deposit
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		depositRepo, depRepoErr := uow.GetAs[DepositRepository](tx, uow.RepositoryName(repoargs.DepositRepoName))
		if depRepoErr != nil {
			return depRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		deposit, findErr := depositRepo.FindByIDForUpdate(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if deposit.Status != domain.DepositStatusPending {
			return domain.ErrAlreadyProcessed
		}

		var markErr error
		reviewed, markErr = depositRepo.MarkReviewed(c, repoargs.ReviewDeposit{
			ID:         id,
			Status:     domain.DepositStatusApproved,
			ReviewedBy: reviewer,
		})
		if markErr != nil {
			return markErr //nolint:wrapcheck
		}

		if _, creditErr := userRepo.CreditBalance(c, deposit.Username, deposit.Amount); creditErr != nil {
			return creditErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, fmt.Errorf("approving deposit: %w", txErr)
	}
	return reviewed, nil
}

// Decline отклоняет заявку с указанием причины. Баланс не меняется. Предусловия
// те же, что и у Approve.
func (s *DepositService) Decline(ctx context.Context, id string, reviewer string, reason string) (*domain.Deposit, error) {
	var reviewed *domain.Deposit
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		depositRepo, depRepoErr := uow.GetAs[DepositRepository](tx, uow.RepositoryName(repoargs.DepositRepoName))
		if depRepoErr != nil {
			return depRepoErr //nolint:wrapcheck
		}

		deposit, findErr := depositRepo.FindByIDForUpdate(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if deposit.Status != domain.DepositStatusPending {
			return domain.ErrAlreadyProcessed
		}

		var markErr error
		reviewed, markErr = depositRepo.MarkReviewed(c, repoargs.ReviewDeposit{
			ID:            id,
			Status:        domain.DepositStatusDeclined,
			ReviewedBy:    reviewer,
			DeclineReason: reason,
		})
		if markErr != nil {
			return markErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, fmt.Errorf("declining deposit: %w", txErr)
	}
	return reviewed, nil
}
