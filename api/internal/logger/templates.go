package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplWithdrawalErr(message string, errorId string, withdrawalId string, amount decimal.Decimal, crypto string, uri string, userId string, ip string) string {

	l.Error(message, LS_WITHDRAWALS, true, "withdrawal_id", withdrawalId, "amount", amount.String(), "crypto", crypto, "uri", uri, "error_id", errorId, "ip", ip, "user_id", userId)
	return errorId
}

func (l Logger) TemplWithdrawalInfo(message string, errorId string, withdrawalId string, amount decimal.Decimal, crypto string, uri string, userId string, ip string) string {
	l.Info(message, LS_WITHDRAWALS, true, "withdrawal_id", withdrawalId, "amount", amount.String(), "crypto", crypto, "uri", uri, "error_id", errorId, "ip", ip, "user_id", userId)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", err.Error(), "ipv4", ipv4)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, LS_NATS, true, "nats_url", natsUrl, "error", err.Error())
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, LS_NATS, true, "nats_url", natsUrl, "error", "N/A")
}

func (l Logger) TemplWebhookErr(message, url string, attempts int, proxy string, payload []byte) {
	l.Error(message, LS_WEBHOOKS, true, "url", url, "attempts", attempts, "proxy", proxy, "payload", string(payload))
}

func (l Logger) TemplNoticeErr(message string, errorId string, noticeId string, kind string, err error) string {
	l.Error(message, LS_NOTICES, true, "notice_id", noticeId, "kind", kind, "error", err.Error(), "error_id", errorId)
	return errorId
}

func (l Logger) TemplNoticeInfo(message string, noticeId string, kind string) {
	l.Info(message, LS_NOTICES, true, "notice_id", noticeId, "kind", kind, "error", "N/A")
}
