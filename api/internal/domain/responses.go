package domain

import (
	"errors"
	"net/http"
)

type ResponseWithdrawalInfo struct {
	Id             string `json:"id"`
	UserId         string `json:"user_id"`
	Reference      string `json:"reference"`
	Amount         string `json:"amount"`
	Cryptocurrency string `json:"cryptocurrency"`
	WalletAddress  string `json:"wallet_address"`
	Narration      string `json:"narration"`
	Status         string `json:"status"`
	AdminNotes     string `json:"admin_notes,omitempty"`
	CreatedAt      string `json:"created_at"`
	ProcessedAt    string `json:"processed_at,omitempty"`
}

type ResponseProfileInfo struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Balance  string `json:"balance"`
}

// lifecycle failures surfaced by the withdrawals service
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrNoticeNotFound      = errors.New("notice not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimum        = errors.New("amount below minimum")
	ErrBalanceUpdate       = errors.New("balance update failed")
	ErrPersistence         = errors.New("persistence failure")
	ErrInternalServerError = errors.New("internal server error")
)

// AlreadyProcessedError is a concurrency signal, not a fault: the
// withdrawal already left pending and the caller learns its current
// status instead of racing.
type AlreadyProcessedError struct {
	Status WithdrawalStatus
}

func (e *AlreadyProcessedError) Error() string {
	return "already processed, status: " + e.Status.ToString()
}

func IsAlreadyProcessed(err error) (WithdrawalStatus, bool) {
	var ap *AlreadyProcessedError
	if errors.As(err, &ap) {
		return ap.Status, true
	}
	return WITHDRAWAL_NONE, false
}

const (
	ErrMsgRateLimitExceeded         = "rate limit exceeded"
	ErrMsgInternalServerError       = "internal server error"
	ErrMsgParamsInternalServerError = "internal server error: %s"
	ErrMsgBadRequest                = "bad request"
	ErrMsgParamsBadRequest          = "bad request: %s"
	ErrMsgAccessError               = "access error"
	ErrMsgUnauthenticated           = "unauthenticated"

	ErrMsgWithdrawalNotFound = "withdrawal not found"
	ErrMsgProfileNotFound    = "profile not found"
	ErrMsgNoticeNotFound     = "notice not found"
	ErrMsgProfileExists      = "profile already exists"

	ErrMsgInsufficientFunds       = "insufficient funds"
	ErrMsgParamsInsufficientFunds = "insufficient funds. available: %s"
	ErrMsgParamsBelowMinimum      = "minimum withdrawal amount is %s"
	ErrMsgParamsAlreadyProcessed  = "withdrawal already processed, status: %s"
	ErrMsgBalanceUpdateFailed     = "balance update failed, withdrawal returned to pending"

	ErrMsgInvalidWithdrawalId = "invalid withdrawal id"
	ErrMsgInvalidCrypto       = "invalid cryptocurrency"
	ErrMsgInvalidAddress      = "invalid wallet address"
)

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return 200
	}

	if _, ok := IsAlreadyProcessed(err); ok {
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrWithdrawalNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNoticeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, ErrBelowMinimum):
		status = http.StatusBadRequest
	case errors.Is(err, ErrBalanceUpdate):
		status = http.StatusConflict
	case errors.Is(err, ErrPersistence):
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
	}
	return status
}
