package repoargs

import "github.com/fsdevblog/snow-topup/internal/domain"

type CreateUser struct {
	Username     string
	PasswordHash string
	Roles        domain.Roles
}
