package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/snow-topup/internal/domain"
	"github.com/fsdevblog/snow-topup/internal/service"
)

type AdminUsersHandler struct {
	userService UserServicer
}

func NewAdminUsersHandler(userService UserServicer) *AdminUsersHandler {
	return &AdminUsersHandler{
		userService: userService,
	}
}

// Create POST AdminRouteGroup + AdminUsersRoute. Создает юзера с ролью admin.
func (h *AdminUsersHandler) Create(c *gin.Context) {
	var params CredentialsParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("username & password required")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, createErr := h.userService.Create(ctx, service.CreateUserArgs{
		Username: params.Username,
		Password: params.Password,
		Roles:    domain.Roles{domain.RoleAdmin},
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("User exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "username": user.Username})
}

type ChangePasswordParams struct {
	Password string `binding:"required" json:"password"`
}

// ChangePassword PATCH AdminRouteGroup + AdminUserPasswordRoute. Перехеширует и
// сохраняет новый пароль указанного юзера.
func (h *AdminUsersHandler) ChangePassword(c *gin.Context) {
	target := c.Param("username")

	var params ChangePasswordParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("password required")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.ChangePassword(ctx, target, params.Password); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("Not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type AdminUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// Index GET AdminRouteGroup + AdminUsersRoute. Все юзеры без хешей паролей.
func (h *AdminUsersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.userService.GetAll(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]AdminUserResponse, len(users))
	for i, user := range users {
		response[i] = AdminUserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Balance:   user.Balance,
			Roles:     user.Roles.Strings(),
			CreatedAt: user.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}
