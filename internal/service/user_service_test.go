package service

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/repository/repoargs"
	"github.com/fsdevblog/snow-topup/internal/service/mocks"
	"github.com/fsdevblog/snow-topup/internal/service/tokens"
	"github.com/fsdevblog/snow-topup/pkg/uow"
	uowmocks "github.com/fsdevblog/snow-topup/pkg/uow/mocks"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW      *uowmocks.MockUOW
	mockUserRepo *mocks.MockUserRepository
	mockPsswd    *mocks.MockPasswordHasher
	jwtSecret    []byte
	userService  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)

	s.jwtSecret = []byte("secret")

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.mockPsswd, s.jwtSecret, time.Hour)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TestLogin() {
	savedUserUsername := gofakeit.Username()
	validHashPassword := "hash ok"

	argsOk := LoginUserArgs{Username: savedUserUsername, Password: "<PASSWORD>"}
	argsWrongUsername := LoginUserArgs{Username: "unknown", Password: "<PASSWORD>"}
	argsWrongPass := LoginUserArgs{Username: savedUserUsername, Password: "wrong pass"}

	savedUser := domain.User{
		ID:           1,
		CreatedAt:    time.Now(),
		Username:     savedUserUsername,
		PasswordHash: validHashPassword,
		Balance:      0,
		Roles:        domain.Roles{domain.RoleAdmin},
	}

	s.mockPsswd.EXPECT().ComparePassword(argsOk.Password, validHashPassword).Return(true)
	s.mockPsswd.EXPECT().ComparePassword(argsWrongPass.Password, validHashPassword).Return(false)

	s.mockUserRepo.EXPECT().
		FindByUsername(gomock.Any(), savedUserUsername).
		Return(&savedUser, nil).Times(2)
	s.mockUserRepo.EXPECT().
		FindByUsername(gomock.Any(), argsWrongUsername.Username).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		args    LoginUserArgs
		wantErr error
	}{
		{name: "ok", args: argsOk},
		{name: "wrong username", args: argsWrongUsername, wantErr: domain.ErrRecordNotFound},
		{name: "wrong password", args: argsWrongPass, wantErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, tokenStr, err := s.userService.Login(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Require().NotNil(user)
				s.NotEmpty(tokenStr)

				claims, tokenErr := tokens.ValidateUserJWT(tokenStr, s.jwtSecret)
				s.Require().NoError(tokenErr)
				s.Equal(savedUser.Username, claims.Username)
				s.Equal(savedUser.Roles.Strings(), claims.Roles)
			}
		})
	}
}

func (s *UserServiceTestSuite) TestCreate() {
	argsOk := CreateUserArgs{Username: gofakeit.Username(), Password: "<PASSWORD>"}
	argsDuplicate := CreateUserArgs{Username: "duplicateUser", Password: "<PASSWORD>"}

	validHashedPassword := "hashedPassword"

	createdUser := domain.User{
		ID:           1,
		Username:     argsOk.Username,
		PasswordHash: validHashedPassword,
		CreatedAt:    time.Now(),
	}

	s.mockPsswd.EXPECT().HashPassword(argsOk.Password).Return(validHashedPassword, nil)
	s.mockPsswd.EXPECT().HashPassword(argsDuplicate.Password).Return(validHashedPassword, nil)

	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username:     argsOk.Username,
			PasswordHash: validHashedPassword,
		})).
		Return(&createdUser, nil)

	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username:     argsDuplicate.Username,
			PasswordHash: validHashedPassword,
		})).
		Return(nil, domain.ErrDuplicateKey)

	cases := []struct {
		name     string
		args     CreateUserArgs
		wantErr  error
		wantUser *domain.User
	}{
		{name: "ok", args: argsOk, wantUser: &createdUser},
		{name: "duplicate username", args: argsDuplicate, wantErr: domain.ErrDuplicateKey},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, err := s.userService.Create(s.T().Context(), t.args)

			s.Require().ErrorIs(err, t.wantErr)
			s.Equal(t.wantUser, user)
		})
	}
}

func (s *UserServiceTestSuite) TestCreateWithRoles() {
	args := CreateUserArgs{
		Username: gofakeit.Username(),
		Password: "<PASSWORD>",
		Roles:    domain.Roles{domain.RoleAdmin},
	}

	s.mockPsswd.EXPECT().HashPassword(args.Password).Return("hash", nil)

	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username:     args.Username,
			PasswordHash: "hash",
			Roles:        domain.Roles{domain.RoleAdmin},
		})).
		Return(&domain.User{Username: args.Username, Roles: args.Roles}, nil)

	user, err := s.userService.Create(s.T().Context(), args)
	s.Require().NoError(err)
	s.True(user.Roles.Has(domain.RoleAdmin))
}

func (s *UserServiceTestSuite) TestChangePassword() {
	s.mockPsswd.EXPECT().HashPassword("new password").Return("new hash", nil).Times(2)

	s.mockUserRepo.EXPECT().
		UpdatePassword(gomock.Any(), "known", "new hash").
		Return(nil)
	s.mockUserRepo.EXPECT().
		UpdatePassword(gomock.Any(), "unknown", "new hash").
		Return(domain.ErrRecordNotFound)

	s.Run("ok", func() {
		s.Require().NoError(s.userService.ChangePassword(s.T().Context(), "known", "new password"))
	})

	s.Run("unknown user", func() {
		err := s.userService.ChangePassword(s.T().Context(), "unknown", "new password")
		s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	})
}
