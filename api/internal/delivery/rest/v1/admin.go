// ADMIN ROUTES

package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (h *Handler) adminWithdrawalList(c *gin.Context) {
	var errid = logger.GenErrorId()

	filters := parseWithdrawalFilters(c)
	filters.UserID = c.Query("user_id")

	withdrawals, total, err := h.services.Withdrawals.ListAll(filters)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplWithdrawalErr("admin list withdrawals error: "+err.Error(), errid, logger.NA, decimal.Zero, logger.NA, c.Request.RequestURI, filters.UserID, c.ClientIP())
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawalList{
		Error:       false,
		Total:       total,
		Withdrawals: formatWithdrawalInfos(withdrawals),
	})
}

func (h *Handler) withdrawalApprove(c *gin.Context) {
	var errid = logger.GenErrorId()

	withdrawalId := c.Param("withdrawal_id")
	if withdrawalId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "withdrawal id is required"), "")
		return
	}

	withdrawal, err := h.services.Withdrawals.Approve(withdrawalId)
	if err != nil {
		amount, crypto, userId := withdrawalLogFields(withdrawal)
		h.respondWithdrawalErr(c, err, errid, withdrawalId, amount, crypto, userId)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawal{
		Error:      false,
		Withdrawal: formatWithdrawalInfo(withdrawal),
	})

	h.log.TemplWithdrawalInfo("withdrawal approved", errid, withdrawal.WithdrawalID, withdrawal.Amount, withdrawal.Crypto, c.Request.RequestURI, withdrawal.UserID, c.ClientIP())
}

func (h *Handler) withdrawalReject(c *gin.Context) {
	var errid = logger.GenErrorId()

	withdrawalId := c.Param("withdrawal_id")
	if withdrawalId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "withdrawal id is required"), "")
		return
	}

	var data struct {
		Notes string `json:"notes" validate:"max=2000"`
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		h.log.Debug("bind json error: " + err.Error())
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	withdrawal, err := h.services.Withdrawals.Reject(withdrawalId, data.Notes)
	if err != nil {
		amount, crypto, userId := withdrawalLogFields(withdrawal)
		h.respondWithdrawalErr(c, err, errid, withdrawalId, amount, crypto, userId)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawal{
		Error:      false,
		Withdrawal: formatWithdrawalInfo(withdrawal),
	})

	h.log.TemplWithdrawalInfo("withdrawal rejected", errid, withdrawal.WithdrawalID, withdrawal.Amount, withdrawal.Crypto, c.Request.RequestURI, withdrawal.UserID, c.ClientIP())
}

// withdrawalLogFields pulls log template fields out of a possibly nil
// record. Reject hands back the record together with an error when the
// profile is gone, Approve hands back nil.
func withdrawalLogFields(withdrawal *domain.Withdrawals) (decimal.Decimal, string, string) {
	if withdrawal == nil {
		return decimal.Zero, logger.NA, logger.NA
	}
	return withdrawal.Amount, withdrawal.Crypto, withdrawal.UserID
}

func (h *Handler) withdrawalQrCode(c *gin.Context) {
	var errid = logger.GenErrorId()

	withdrawalId := c.Param("withdrawal_id")
	if withdrawalId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "withdrawal id is required"), "")
		return
	}

	withdrawal, err := h.services.Withdrawals.Find(withdrawalId)
	if err != nil {
		if errors.Is(err, domain.ErrWithdrawalNotFound) {
			responseErr(c, http.StatusNotFound, domain.ErrMsgWithdrawalNotFound, "")
			return
		}
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplWithdrawalErr("find withdrawal error: "+err.Error(), errid, withdrawalId, decimal.Zero, logger.NA, c.Request.RequestURI, logger.NA, c.ClientIP())
		return
	}

	qrCode, err := h.services.QrCodes.FindOrNew(withdrawal.WalletAddress)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplWithdrawalErr("qr code find or new error: "+err.Error(), errid, withdrawalId, withdrawal.Amount, withdrawal.Crypto, c.Request.RequestURI, withdrawal.UserID, c.ClientIP())
		return
	}

	imageData, err := base64.RawStdEncoding.DecodeString(qrCode)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplWithdrawalErr("qr code decode error: "+err.Error(), errid, withdrawalId, withdrawal.Amount, withdrawal.Crypto, c.Request.RequestURI, withdrawal.UserID, c.ClientIP())
		return
	}

	c.Data(http.StatusOK, "image/png", imageData)
}

func (h *Handler) noticeResend(c *gin.Context) {
	var errid = logger.GenErrorId()

	noticeId := c.Param("notice_id")
	if noticeId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "notice id is required"), "")
		return
	}

	relay, err := h.services.Notices.Resend(noticeId)
	if err != nil {
		if errors.Is(err, domain.ErrNoticeNotFound) {
			responseErr(c, http.StatusNotFound, domain.ErrMsgNoticeNotFound, "")
			return
		}
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplNoticeErr("resend notice error: "+err.Error(), errid, noticeId, logger.NA, err)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseNoticeResent{
		Error:    false,
		NoticeId: noticeId,
		Relay:    relay,
	})
}

func (h *Handler) profileCreate(c *gin.Context) {
	var data struct {
		UserId   string `json:"user_id" validate:"omitempty,uuid4"`
		Username string `json:"username" validate:"required,min=1,max=32,alphanum"`
		Email    string `json:"email" validate:"required,email"`
		Balance  string `json:"balance"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		h.log.Debug("bind json error: " + err.Error())
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		return
	}

	userId := data.UserId
	if userId == "" {
		userId = uuid.NewString()
	}

	balance := decimal.Zero
	if data.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(data.Balance)
		if err != nil || balance.IsNegative() {
			responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "balance must be a non-negative decimal string"), "")
			return
		}
	}

	_, err := h.services.Profiles.Find(userId)
	if err == nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgProfileExists, "")
		return
	}

	if !errors.Is(err, domain.ErrProfileNotFound) {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		return
	}

	err = h.services.Profiles.Create(&domain.Profiles{
		UserID:   userId,
		Username: data.Username,
		Email:    data.Email,
		Balance:  balance,
	})

	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseProfileCreated{
		Error:  false,
		UserId: userId,
	})
}

func (h *Handler) updateProxyList(c *gin.Context) {
	fmt.Println("UPDATE PROXY LIST")

	h.services.WebhookSender.UpdateList(config.GetProxyList(h.config.ProxyPath))
	c.JSON(200, gin.H{
		"ok": true,
	})
}

func (h *Handler) getProxyList(c *gin.Context) {
	c.JSON(200, gin.H{
		"proxies": h.services.WebhookSender.GetList(),
	})
}

func (h *Handler) initAdminRoutes(g *gin.RouterGroup) {
	ag := g.Group("/admin", h.adminAccessMiddleware())

	ag.GET("/withdrawals", h.adminWithdrawalList)
	ag.POST("/withdrawals/:withdrawal_id/approve", h.withdrawalApprove)
	ag.POST("/withdrawals/:withdrawal_id/reject", h.withdrawalReject)
	ag.GET("/withdrawals/:withdrawal_id/qr-code", h.withdrawalQrCode)
	ag.POST("/notices/:notice_id/resend", h.noticeResend)
	ag.POST("/profiles", h.profileCreate)
	ag.POST("/webhook/updateProxyList", h.updateProxyList)
	ag.POST("/webhook/getProxyList", h.getProxyList)
}
