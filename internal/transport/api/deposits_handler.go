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

type DepositsHandler struct {
	depositService DepositServicer
}

func NewDepositsHandler(depositService DepositServicer) *DepositsHandler {
	return &DepositsHandler{
		depositService: depositService,
	}
}

type CreateDepositParams struct {
	Amount    int64  `json:"amount"`
	Bank      string `json:"bank"`
	Reference string `json:"reference"`
}

type DepositResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Amount        int64      `json:"amount"`
	Bank          string     `json:"bank"`
	Reference     string     `json:"reference"`
	Status        string     `json:"status"`
	ReviewedBy    *string    `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	DeclineReason *string    `json:"declineReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func newDepositResponse(deposit *domain.Deposit) DepositResponse {
	return DepositResponse{
		ID:            deposit.ID,
		Username:      deposit.Username,
		Amount:        deposit.Amount,
		Bank:          deposit.Bank,
		Reference:     deposit.Reference,
		Status:        string(deposit.Status),
		ReviewedBy:    deposit.ReviewedBy,
		ReviewedAt:    deposit.ReviewedAt,
		DeclineReason: deposit.DeclineReason,
		CreatedAt:     deposit.CreatedAt,
	}
}

// Create POST DepositsRoute. Заявка на пополнение от текущего юзера.
func (h *DepositsHandler) Create(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var params CreateDepositParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("Invalid amount")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	deposit, createErr := h.depositService.Create(ctx, service.CreateDepositArgs{
		Username:  claims.Username,
		Amount:    params.Amount,
		Bank:      params.Bank,
		Reference: params.Reference,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrInvalidAmount) {
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("Invalid amount")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": deposit.ID})
}

// AdminIndex GET AdminRouteGroup + AdminDepositsRoute. Все заявки, самые новые - первыми.
func (h *DepositsHandler) AdminIndex(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	deposits, err := h.depositService.GetAll(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]DepositResponse, len(deposits))
	for i := range deposits {
		response[i] = newDepositResponse(&deposits[i])
	}

	c.JSON(http.StatusOK, response)
}

// Approve POST AdminRouteGroup + AdminDepositApproveRoute. Подтверждает заявку и
// зачисляет сумму на баланс владельца.
func (h *DepositsHandler) Approve(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.depositService.Approve(ctx, c.Param("id"), claims.Username); err != nil {
		h.abortWithReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type DeclineDepositParams struct {
	Reason string `json:"reason"`
}

// Decline POST AdminRouteGroup + AdminDepositDeclineRoute. Отклоняет заявку, баланс
// не трогает.
func (h *DepositsHandler) Decline(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var params DeclineDepositParams
	// тело с причиной опционально
	_ = c.ShouldBindJSON(&params)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.depositService.Decline(ctx, c.Param("id"), claims.Username, params.Reason); err != nil {
		h.abortWithReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *DepositsHandler) abortWithReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		_ = c.AbortWithError(http.StatusNotFound, errors.New("Not found")).
			SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrAlreadyProcessed):
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("Already processed")).
			SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
