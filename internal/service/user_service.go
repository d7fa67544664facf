package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/internal/service/tokens"
	"github.com/fsdevblog/snow-topup/pkg/uow"
)

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	psswd          PasswordHasher
	jwtTokenSecret []byte
	jwtTokenExpire time.Duration
}

func NewUserService(
	u uow.UOW,
	psswd PasswordHasher,
	jwtTokenSecret []byte,
	jwtTokenExpire time.Duration,
) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		psswd:          psswd,
		jwtTokenSecret: jwtTokenSecret,
		jwtTokenExpire: jwtTokenExpire,
	}, nil
}

type CreateUserArgs struct {
	Username string
	Password string
	Roles    domain.Roles
}

// Create хеширует пароль и создает юзера с нулевым балансом. Возвращает
// domain.ErrDuplicateKey, если юзернейм занят.
func (s *UserService) Create(ctx context.Context, args CreateUserArgs) (*domain.User, error) {
	passwordHash, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, fmt.Errorf("creating user: %s", hashErr.Error())
	}

	user, createErr := s.userRepo.Create(ctx, repoargs.CreateUser{
		Username:     args.Username,
		PasswordHash: passwordHash,
		Roles:        args.Roles,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating user: %w", createErr)
	}
	return user, nil
}

type LoginUserArgs struct {
	Username string
	Password string
}

// Login проверяет пару логин/пароль и выпускает jwt токен с юзернеймом и ролями.
// Возвращает domain.ErrRecordNotFound для неизвестного юзера и
// domain.ErrPasswordMissMatch для неверного пароля.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindByUsername(ctx, args.Username)
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in user: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, user.PasswordHash) {
		return nil, "", fmt.Errorf("logging in user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.Username, user.Roles.Strings(), s.jwtTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}

// GetByUsername возвращает профиль юзера.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

// ChangePassword перехеширует и сохраняет новый пароль юзера. Возвращает
// domain.ErrRecordNotFound для неизвестного юзера.
func (s *UserService) ChangePassword(ctx context.Context, username string, newPassword string) error {
	passwordHash, hashErr := s.psswd.HashPassword(newPassword)
	if hashErr != nil {
		return fmt.Errorf("changing password: %s", hashErr.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, username, passwordHash); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

// GetAll возвращает всех юзеров. Хеш пароля наружу не отдается - это забота хендлера.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}
