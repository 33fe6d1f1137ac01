package v1

import (
	"payout/api/internal/domain"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

// create/info/approve/reject all answer with the same envelope
type responseWithdrawal struct {
	Error      bool                          `json:"error"`
	Withdrawal domain.ResponseWithdrawalInfo `json:"withdrawal"`
}

type responseWithdrawalList struct {
	Error       bool                            `json:"error"`
	Total       int64                           `json:"total"`
	Withdrawals []domain.ResponseWithdrawalInfo `json:"withdrawals"`
}

type responseProfile struct {
	Error   bool                       `json:"error"`
	Profile domain.ResponseProfileInfo `json:"profile"`
}

type responseProfileCreated struct {
	Error  bool   `json:"error"`
	UserId string `json:"user_id"`
}

type responseNoticeResent struct {
	Error    bool   `json:"error"`
	NoticeId string `json:"notice_id"`
	Relay    string `json:"relay"` // smtp relay that accepted the letter
}

const timeLayout = "2006-01-02 15:04:05"

func formatWithdrawalInfo(withdrawal *domain.Withdrawals) domain.ResponseWithdrawalInfo {
	info := domain.ResponseWithdrawalInfo{
		Id:             withdrawal.WithdrawalID,
		UserId:         withdrawal.UserID,
		Reference:      withdrawal.Reference,
		Amount:         withdrawal.Amount.String(),
		Cryptocurrency: withdrawal.Crypto,
		WalletAddress:  withdrawal.WalletAddress,
		Narration:      withdrawal.Narration,
		Status:         withdrawal.Status.ToString(),
		AdminNotes:     withdrawal.AdminNotes,
		CreatedAt:      withdrawal.CreatedAt.Format(timeLayout),
	}

	if withdrawal.ProcessedAt != nil {
		info.ProcessedAt = withdrawal.ProcessedAt.Format(timeLayout)
	}

	return info
}

func formatWithdrawalInfos(withdrawals []domain.Withdrawals) []domain.ResponseWithdrawalInfo {
	infos := make([]domain.ResponseWithdrawalInfo, 0, len(withdrawals))
	for i := range withdrawals {
		infos = append(infos, formatWithdrawalInfo(&withdrawals[i]))
	}
	return infos
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}
