package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/snow-topup/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RegisterRoute = "/auth/register"
	LoginRoute    = "/auth/login"
	MeRoute       = "/auth/me"
	DepositsRoute = "/deposits"
	OrdersRoute   = "/orders"

	AdminRouteGroup          = "/admin"
	AdminUsersRoute          = "/users"
	AdminUserPasswordRoute   = "/users/:username/password"
	AdminDepositsRoute       = "/deposits"
	AdminDepositApproveRoute = "/deposits/:id/approve"
	AdminDepositDeclineRoute = "/deposits/:id/decline"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	DepositService DepositServicer
	OrderService   OrderServicer
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	usersHandler := NewAdminUsersHandler(args.UserService)
	depositsHandler := NewDepositsHandler(args.DepositService)
	ordersHandler := NewOrdersHandler(args.OrderService)

	r.POST(RegisterRoute, authHandler.Register)
	r.POST(LoginRoute, authHandler.Login)

	authorized := r.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	authorized.GET(MeRoute, authHandler.Me)
	authorized.POST(DepositsRoute, depositsHandler.Create)
	authorized.POST(OrdersRoute, ordersHandler.Create)
	authorized.GET(OrdersRoute, ordersHandler.Index)

	admin := authorized.Group(AdminRouteGroup, middlewares.AdminRequired())
	admin.POST(AdminUsersRoute, usersHandler.Create)
	admin.PATCH(AdminUserPasswordRoute, usersHandler.ChangePassword)
	admin.GET(AdminUsersRoute, usersHandler.Index)
	admin.GET(AdminDepositsRoute, depositsHandler.AdminIndex)
	admin.POST(AdminDepositApproveRoute, depositsHandler.Approve)
	admin.POST(AdminDepositDeclineRoute, depositsHandler.Decline)

	return r
}
