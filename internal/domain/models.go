package domain

import "time"

type Role string

const RoleAdmin Role = "admin"

type Roles []Role

// Has проверяет наличие роли в наборе.
func (r Roles) Has(role Role) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

func (r Roles) Strings() []string {
	res := make([]string, len(r))
	for i, v := range r {
		res[i] = string(v)
	}
	return res
}

func RolesFromStrings(values []string) Roles {
	res := make(Roles, len(values))
	for i, v := range values {
		res[i] = Role(v)
	}
	return res
}

type User struct {
	ID           int64
	CreatedAt    time.Time
	Username     string
	PasswordHash string
	Balance      int64
	Roles        Roles
}

type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusDeclined DepositStatus = "declined"
)

// Deposit - заявка пользователя на пополнение баланса. Поля Reviewed* и DeclineReason
// заполняются только после решения администратора.
type Deposit struct {
	ID            string
	CreatedAt     time.Time
	Username      string
	Amount        int64
	Bank          string
	Reference     string
	Status        DepositStatus
	ReviewedBy    *string
	ReviewedAt    *time.Time
	DeclineReason *string
}

type OrderStatus string

const OrderStatusPending OrderStatus = "pending"

// Order - заявка на покупку пакета. Смена статуса выполняется внешним процессом,
// сервис только создает и отдает записи.
type Order struct {
	ID          string
	CreatedAt   time.Time
	Username    string
	PackageID   string
	PackageName string
	Price       int64
	Login       string
	Note        string
	Status      OrderStatus
}
