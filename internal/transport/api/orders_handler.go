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

type OrdersHandler struct {
	orderService OrderServicer
}

func NewOrdersHandler(orderService OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
	}
}

type CreateOrderParams struct {
	PackageID   string `json:"packageId"`
	PackageName string `json:"packageName"`
	Price       int64  `json:"price"`
	Login       string `json:"login"`
	Note        string `json:"note"`
}

type OrderResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	PackageID   string    `json:"packageId"`
	PackageName string    `json:"packageName"`
	Price       int64     `json:"price"`
	Login       string    `json:"login"`
	Note        string    `json:"note"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		Username:    order.Username,
		PackageID:   order.PackageID,
		PackageName: order.PackageName,
		Price:       order.Price,
		Login:       order.Login,
		Note:        order.Note,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}

// Create POST OrdersRoute. Заказ пакета от текущего юзера.
func (h *OrdersHandler) Create(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var params CreateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid payload")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, createErr := h.orderService.Create(ctx, service.CreateOrderArgs{
		Username:    claims.Username,
		PackageID:   params.PackageID,
		PackageName: params.PackageName,
		Price:       params.Price,
		Login:       params.Login,
		Note:        params.Note,
	})
	if createErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": order.ID})
}

// Index GET OrdersRoute. Админ видит все заказы, обычный юзер - только свои.
func (h *OrdersHandler) Index(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	var orders []domain.Order
	var err error
	if domain.RolesFromStrings(claims.Roles).Has(domain.RoleAdmin) {
		orders, err = h.orderService.GetAll(ctx)
	} else {
		orders, err = h.orderService.GetByUsername(ctx, claims.Username)
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}

	c.JSON(http.StatusOK, response)
}
