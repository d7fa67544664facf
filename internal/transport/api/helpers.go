package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/snow-topup/internal/service/tokens"
	"github.com/fsdevblog/snow-topup/internal/transport/api/middlewares"
)

// getClaimsFromContext берет из контекста gin claims текущего юзера. Claims
// устанавливаются в middlewares.AuthRequired. В случае, если значения в контексте
// нет или ошибка утверждения типа - вернется nil.
func getClaimsFromContext(c *gin.Context) *tokens.UserClaims {
	value, exist := c.Get(middlewares.CurrentUserKey)
	if !exist {
		return nil
	}
	claims, ok := value.(*tokens.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
