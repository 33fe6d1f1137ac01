// USER WITHDRAWAL ROUTES

package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"payout/api/internal/domain"
	"payout/api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// amount - decimal string
// cryptocurrency - string
// wallet_address - string

// POST /{version}/withdrawals
func (h *Handler) withdrawalCreate(c *gin.Context) {
	var errid = logger.GenErrorId()

	userId := sessionUserId(c)

	isRateLimited := withdrawalRateLimit(userId, DEFAULT_LIMIT)
	if isRateLimited {
		responseErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded, "")
		return
	}

	data, ok := filterWithdrawalQuery(c)
	if !ok || data == nil {
		return
	}

	withdrawal, err := h.services.Withdrawals.Initiate(userId, data.AmountDecimal, domain.StrToCrypto(data.Cryptocurrency), data.WalletAddress)
	if err != nil {
		h.respondWithdrawalErr(c, err, errid, logger.NA, data.AmountDecimal, data.Cryptocurrency, userId)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawal{
		Error:      false,
		Withdrawal: formatWithdrawalInfo(withdrawal),
	})

	h.log.TemplWithdrawalInfo("new withdrawal requested", errid, withdrawal.WithdrawalID, withdrawal.Amount, withdrawal.Crypto, c.Request.RequestURI, userId, c.ClientIP())
}

// GET /{version}/withdrawals
func (h *Handler) withdrawalList(c *gin.Context) {
	var errid = logger.GenErrorId()

	userId := sessionUserId(c)

	filters := parseWithdrawalFilters(c)

	withdrawals, total, err := h.services.Withdrawals.ListForUser(userId, filters)
	if err != nil {
		h.respondWithdrawalErr(c, err, errid, logger.NA, decimal.Zero, logger.NA, userId)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawalList{
		Error:       false,
		Total:       total,
		Withdrawals: formatWithdrawalInfos(withdrawals),
	})
}

// GET /{version}/withdrawals/{withdrawal_id}
func (h *Handler) withdrawalInfo(c *gin.Context) {
	var errid = logger.GenErrorId()

	userId := sessionUserId(c)

	withdrawalId := c.Param("withdrawal_id")
	if withdrawalId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "withdrawal id is required"), "")
		return
	}

	withdrawal, err := h.services.Withdrawals.Find(withdrawalId)
	if err != nil {
		h.respondWithdrawalErr(c, err, errid, withdrawalId, decimal.Zero, logger.NA, userId)
		return
	}

	// somebody else's withdrawal does not exist for this caller
	if withdrawal.UserID != userId {
		responseErr(c, http.StatusNotFound, domain.ErrMsgWithdrawalNotFound, "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawal{
		Error:      false,
		Withdrawal: formatWithdrawalInfo(withdrawal),
	})
}

// status - string (pending, processing, completed, rejected)
// q - free text over reference, wallet address, username, email
// sort_by - created_at, processed_at, amount, status, reference
// order - asc, desc
// offset, limit - ints
func parseWithdrawalFilters(c *gin.Context) domain.WithdrawalFilters {
	filters := domain.WithdrawalFilters{
		Status: domain.StrToWithdrawalStatus(c.Query("status")),
		Search: c.Query("q"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return filters
}

// respondWithdrawalErr turns a lifecycle error into the response envelope.
// 4xx answers carry no error id, a 5xx does and lands in the logstream.
func (h *Handler) respondWithdrawalErr(c *gin.Context, err error, errid string, withdrawalId string, amount decimal.Decimal, crypto string, userId string) {
	status := domain.GetStatusByErr(err)

	if alreadyStatus, ok := domain.IsAlreadyProcessed(err); ok {
		responseErr(c, status, fmt.Sprintf(domain.ErrMsgParamsAlreadyProcessed, alreadyStatus.ToString()), "")
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		responseErr(c, status, domain.ErrMsgUnauthenticated, "")
	case errors.Is(err, domain.ErrWithdrawalNotFound):
		responseErr(c, status, domain.ErrMsgWithdrawalNotFound, "")
	case errors.Is(err, domain.ErrProfileNotFound):
		responseErr(c, status, domain.ErrMsgProfileNotFound, "")
	case errors.Is(err, domain.ErrBelowMinimum):
		responseErr(c, status, fmt.Sprintf(domain.ErrMsgParamsBelowMinimum, domain.MinWithdrawal.String()), "")
	case errors.Is(err, domain.ErrInsufficientBalance):
		msg := domain.ErrMsgInsufficientFunds
		if profile, perr := h.services.Profiles.Find(userId); perr == nil {
			msg = fmt.Sprintf(domain.ErrMsgParamsInsufficientFunds, profile.Balance.String())
		}
		responseErr(c, status, msg, "")
	case errors.Is(err, domain.ErrBalanceUpdate):
		responseErr(c, status, domain.ErrMsgBalanceUpdateFailed, errid)
		h.log.TemplWithdrawalErr("balance update failed: "+err.Error(), errid, withdrawalId, amount, crypto, c.Request.RequestURI, userId, c.ClientIP())
	default:
		responseErr(c, status, domain.ErrMsgInternalServerError, errid)
		h.log.TemplWithdrawalErr("withdrawal error: "+err.Error(), errid, withdrawalId, amount, crypto, c.Request.RequestURI, userId, c.ClientIP())
	}
}

func (h *Handler) initWithdrawalRoutes(g *gin.RouterGroup) {
	wg := g.Group("/withdrawals", h.sessionMiddleware())

	wg.POST("", h.withdrawalCreate)
	wg.GET("", h.withdrawalList)
	wg.GET("/:withdrawal_id", h.withdrawalInfo)
}
