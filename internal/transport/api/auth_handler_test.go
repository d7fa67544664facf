package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/service"
	"github.com/fsdevblog/snow-topup/internal/service/tokens"
	"github.com/fsdevblog/snow-topup/internal/transport/api"
	"github.com/fsdevblog/snow-topup/internal/transport/api/mocks"
	"github.com/fsdevblog/snow-topup/internal/transport/api/testutils"
)

var testJWTSecret = []byte("test secret")

// makeToken выпускает jwt для запросов к защищенным роутам.
func makeToken(s *suite.Suite, username string, roles []string) string {
	token, err := tokens.GenerateUserJWT(username, roles, time.Hour, testJWTSecret)
	s.Require().NoError(err)
	return token
}

func decodeBody(s *suite.Suite, resp *http.Response) map[string]any {
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type AuthHandlerTestSuite struct {
	suite.Suite
	mockUserService *mocks.MockUserServicer
	router          *gin.Engine
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	mockCtrl := gomock.NewController(s.T())
	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)

	s.router = api.New(api.RouterArgs{
		UserService:  s.mockUserService,
		JWTSecretKey: testJWTSecret,
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	s.mockUserService.EXPECT().
		Create(gomock.Any(), gomock.Eq(service.CreateUserArgs{Username: "alice", Password: "secret123"})).
		Return(&domain.User{Username: "alice"}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RegisterRoute,
		Body:   bytes.NewBufferString(`{"username": "alice", "password": "secret123"}`),
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, decodeBody(&s.Suite, resp)["ok"])
}

func (s *AuthHandlerTestSuite) TestRegisterDuplicate() {
	s.mockUserService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RegisterRoute,
		Body:   bytes.NewBufferString(`{"username": "alice", "password": "secret123"}`),
	})

	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("User exists", decodeBody(&s.Suite, resp)["error"])
}

func (s *AuthHandlerTestSuite) TestRegisterBadParams() {
	s.mockUserService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	for _, body := range []string{``, `{}`, `{"username": "alice"}`, `{"password": "secret123"}`} {
		resp := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    api.RegisterRoute,
			Body:   bytes.NewBufferString(body),
		})

		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("username & password required", decodeBody(&s.Suite, resp)["error"])
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := domain.User{
		Username:  "alice",
		Balance:   1500,
		Roles:     domain.Roles{},
		CreatedAt: time.Now(),
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), gomock.Eq(service.LoginUserArgs{Username: "alice", Password: "secret123"})).
		Return(&user, "jwt-token", nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.LoginRoute,
		Body:   bytes.NewBufferString(`{"username": "alice", "password": "secret123"}`),
	})

	s.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(&s.Suite, resp)
	s.Equal("jwt-token", body["token"])

	userBody, ok := body["user"].(map[string]any)
	s.Require().True(ok)
	s.Equal("alice", userBody["username"])
	s.EqualValues(1500, userBody["balance"])
}

func (s *AuthHandlerTestSuite) TestLoginInvalidCredentials() {
	s.mockUserService.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, "", domain.ErrRecordNotFound)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, "", domain.ErrPasswordMissMatch)

	// неизвестный юзер и неверный пароль дают одинаковый ответ
	for range 2 {
		resp := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    api.LoginRoute,
			Body:   bytes.NewBufferString(`{"username": "alice", "password": "wrong"}`),
		})

		s.Equal(http.StatusUnauthorized, resp.StatusCode)
		s.Equal("Invalid credentials", decodeBody(&s.Suite, resp)["error"])
	}
}

func (s *AuthHandlerTestSuite) TestMe() {
	user := domain.User{
		Username:  "alice",
		Balance:   2000,
		Roles:     domain.Roles{},
		CreatedAt: time.Now(),
	}

	s.mockUserService.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(&user, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.MeRoute,
	}, testutils.WithBearer(makeToken(&s.Suite, "alice", nil)))

	s.Equal(http.StatusOK, resp.StatusCode)

	userBody, ok := decodeBody(&s.Suite, resp)["user"].(map[string]any)
	s.Require().True(ok)
	s.Equal("alice", userBody["username"])
	s.EqualValues(2000, userBody["balance"])
}

func (s *AuthHandlerTestSuite) TestMeNoToken() {
	s.mockUserService.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.MeRoute,
	})

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Missing token", decodeBody(&s.Suite, resp)["error"])
}

func (s *AuthHandlerTestSuite) TestMeInvalidToken() {
	s.mockUserService.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.MeRoute,
	}, testutils.WithBearer("not a token"))

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid token", decodeBody(&s.Suite, resp)["error"])
}

func (s *AuthHandlerTestSuite) TestMeVanishedUser() {
	s.mockUserService.EXPECT().
		GetByUsername(gomock.Any(), "ghost").
		Return(nil, domain.ErrRecordNotFound)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.MeRoute,
	}, testutils.WithBearer(makeToken(&s.Suite, "ghost", nil)))

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Not found", decodeBody(&s.Suite, resp)["error"])
}
