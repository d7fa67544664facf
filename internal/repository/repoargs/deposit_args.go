package repoargs

import "github.com/fsdevblog/snow-topup/internal/domain"

type CreateDeposit struct {
	ID        string
	Username  string
	Amount    int64
	Bank      string
	Reference string
}

type ReviewDeposit struct {
	ID            string
	Status        domain.DepositStatus
	ReviewedBy    string
	DeclineReason string
}
