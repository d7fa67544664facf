package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/service"
	"github.com/fsdevblog/snow-topup/internal/transport/api"
	"github.com/fsdevblog/snow-topup/internal/transport/api/mocks"
	"github.com/fsdevblog/snow-topup/internal/transport/api/testutils"
)

type DepositsHandlerTestSuite struct {
	suite.Suite
	mockDepositService *mocks.MockDepositServicer
	router             *gin.Engine
	adminToken         string
	userToken          string
}

func TestDepositsHandlerSuite(t *testing.T) {
	suite.Run(t, new(DepositsHandlerTestSuite))
}

func (s *DepositsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	mockCtrl := gomock.NewController(s.T())
	s.mockDepositService = mocks.NewMockDepositServicer(mockCtrl)

	s.router = api.New(api.RouterArgs{
		DepositService: s.mockDepositService,
		JWTSecretKey:   testJWTSecret,
	})
	s.adminToken = makeToken(&s.Suite, "root", []string{string(domain.RoleAdmin)})
	s.userToken = makeToken(&s.Suite, "alice", nil)
}

func (s *DepositsHandlerTestSuite) TestCreate() {
	depositID := uuid.NewString()

	// username берется из токена, не из тела запроса
	s.mockDepositService.EXPECT().
		Create(gomock.Any(), gomock.Eq(service.CreateDepositArgs{
			Username:  "alice",
			Amount:    500,
			Bank:      "kbank",
			Reference: "tx-100500",
		})).
		Return(&domain.Deposit{
			ID:       depositID,
			Username: "alice",
			Amount:   500,
			Status:   domain.DepositStatusPending,
		}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.DepositsRoute,
		Body:   bytes.NewBufferString(`{"amount": 500, "bank": "kbank", "reference": "tx-100500"}`),
	}, testutils.WithBearer(s.userToken))

	s.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(&s.Suite, resp)
	s.Equal(true, body["ok"])
	s.Equal(depositID, body["id"])
}

func (s *DepositsHandlerTestSuite) TestCreateInvalidAmount() {
	s.mockDepositService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInvalidAmount)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.DepositsRoute,
		Body:   bytes.NewBufferString(`{"amount": -1}`),
	}, testutils.WithBearer(s.userToken))

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Invalid amount", decodeBody(&s.Suite, resp)["error"])
}

func (s *DepositsHandlerTestSuite) TestCreateNoToken() {
	s.mockDepositService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.DepositsRoute,
		Body:   bytes.NewBufferString(`{"amount": 500}`),
	})

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Missing token", decodeBody(&s.Suite, resp)["error"])
}

func (s *DepositsHandlerTestSuite) TestAdminIndex() {
	reviewedBy := "root"
	reviewedAt := time.Now()

	s.mockDepositService.EXPECT().
		GetAll(gomock.Any()).
		Return([]domain.Deposit{
			{ID: uuid.NewString(), Username: "bob", Amount: 700, Status: domain.DepositStatusPending},
			{
				ID:         uuid.NewString(),
				Username:   "alice",
				Amount:     500,
				Status:     domain.DepositStatusApproved,
				ReviewedBy: &reviewedBy,
				ReviewedAt: &reviewedAt,
			},
		}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.AdminRouteGroup + api.AdminDepositsRoute,
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var deposits []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&deposits))
	s.Require().Len(deposits, 2)

	s.Equal("pending", deposits[0]["status"])
	s.NotContains(deposits[0], "reviewedBy")
	s.Equal("approved", deposits[1]["status"])
	s.Equal("root", deposits[1]["reviewedBy"])
}

func (s *DepositsHandlerTestSuite) TestApprove() {
	depositID := uuid.NewString()

	// ревьюером записывается юзернейм из токена админа
	s.mockDepositService.EXPECT().
		Approve(gomock.Any(), depositID, "root").
		Return(&domain.Deposit{ID: depositID, Status: domain.DepositStatusApproved}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/" + depositID + "/approve",
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, decodeBody(&s.Suite, resp)["ok"])
}

func (s *DepositsHandlerTestSuite) TestApproveNotFound() {
	depositID := uuid.NewString()

	s.mockDepositService.EXPECT().
		Approve(gomock.Any(), depositID, "root").
		Return(nil, domain.ErrRecordNotFound)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/" + depositID + "/approve",
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Not found", decodeBody(&s.Suite, resp)["error"])
}

// Оригинальные id заявок были произвольными строками вида d_1712_ab3c; такой id
// не парсится в uuid и для клиента означает "Not found", а не 500.
func (s *DepositsHandlerTestSuite) TestApproveMalformedID() {
	s.mockDepositService.EXPECT().
		Approve(gomock.Any(), "d_1712_ab3c", "root").
		Return(nil, domain.ErrRecordNotFound)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/d_1712_ab3c/approve",
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Not found", decodeBody(&s.Suite, resp)["error"])
}

func (s *DepositsHandlerTestSuite) TestApproveAlreadyProcessed() {
	depositID := uuid.NewString()

	s.mockDepositService.EXPECT().
		Approve(gomock.Any(), depositID, "root").
		Return(nil, domain.ErrAlreadyProcessed)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/" + depositID + "/approve",
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Already processed", decodeBody(&s.Suite, resp)["error"])
}

func (s *DepositsHandlerTestSuite) TestDecline() {
	depositID := uuid.NewString()

	s.mockDepositService.EXPECT().
		Decline(gomock.Any(), depositID, "root", "no matching transfer").
		Return(&domain.Deposit{ID: depositID, Status: domain.DepositStatusDeclined}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/" + depositID + "/decline",
		Body:   bytes.NewBufferString(`{"reason": "no matching transfer"}`),
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, decodeBody(&s.Suite, resp)["ok"])
}

func (s *DepositsHandlerTestSuite) TestDeclineWithoutBody() {
	depositID := uuid.NewString()

	s.mockDepositService.EXPECT().
		Decline(gomock.Any(), depositID, "root", "").
		Return(&domain.Deposit{ID: depositID, Status: domain.DepositStatusDeclined}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.AdminRouteGroup + "/deposits/" + depositID + "/decline",
	}, testutils.WithBearer(s.adminToken))

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, decodeBody(&s.Suite, resp)["ok"])
}
