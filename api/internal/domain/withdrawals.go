package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus uint8

const (
	WITHDRAWAL_NONE WithdrawalStatus = iota // only for init
	WITHDRAWAL_PENDING
	WITHDRAWAL_PROCESSING
	WITHDRAWAL_COMPLETED
	WITHDRAWAL_REJECTED
)

var WithdrawalStatuses = [...]string{"none", "pending", "processing", "completed", "rejected"}

func (ws WithdrawalStatus) ToString() string {
	return WithdrawalStatuses[ws]
}

// End reports a terminal status. Only completed and rejected are terminal,
// processing is a transient claim.
func (ws WithdrawalStatus) End() bool {
	return ws == WITHDRAWAL_COMPLETED || ws == WITHDRAWAL_REJECTED
}

func (ws WithdrawalStatus) IsNone() bool {
	return ws == 0
}

func StrToWithdrawalStatus(s string) WithdrawalStatus {
	for i, statusName := range WithdrawalStatuses {
		if s == statusName {
			return WithdrawalStatus(i)
		}
	}
	return WITHDRAWAL_NONE
}

// MinWithdrawal is the smallest amount a user may request, in account
// currency units.
var MinWithdrawal = decimal.NewFromInt(10)

type Withdrawals struct {
	Model
	ID uint `gorm:"primaryKey"`

	WithdrawalID  string           `gorm:"size:36;unique;not null"`
	UserID        string           `gorm:"size:36;not null;index"`
	Amount        decimal.Decimal  `gorm:"type:numeric"`
	Crypto        string           `gorm:"not null"`
	WalletAddress string           `gorm:"not null"`
	Reference     string           `gorm:"unique;not null"`
	Narration     string           `gorm:"type:text"`
	Status        WithdrawalStatus `gorm:"not null"`
	AdminNotes    string           `gorm:"type:text"`
	ProcessedAt   *time.Time
}

const referencePrefix = "WD"

// NewReference builds a human readable reference. Collisions are unlikely
// but possible, the withdrawals table enforces uniqueness and callers
// retry with a fresh reference on conflict.
func NewReference() string {
	return fmt.Sprintf("%s-%d-%04d", referencePrefix, time.Now().UnixMilli(), rand.Intn(10000))
}

func NewNarration(amount decimal.Decimal, crypto Crypto, walletAddress string) string {
	return fmt.Sprintf("Withdrawal of %s to %s wallet %s", amount.String(), crypto.ToString(), walletAddress)
}

// WithdrawalFilters narrows and pages List queries. Zero values mean
// "no filter". Search matches reference, wallet address, username and
// email.
type WithdrawalFilters struct {
	UserID string
	Status WithdrawalStatus
	Search string
	SortBy string
	Order  string
	Offset int
	Limit  int
}

type Crypto uint8

const (
	CRYPTO_NONE Crypto = iota // only for init
	CRYPTO_SOL
	CRYPTO_TON
	CRYPTO_ETH
)

var Cryptos = [...]string{"none", "sol", "ton", "eth"}

func (c Crypto) ToString() string {
	return Cryptos[c]
}

func (c Crypto) IsNone() bool {
	return c == 0
}

func StrToCrypto(s string) Crypto {
	for i, currencyName := range Cryptos {
		if s == currencyName {
			return Crypto(i)
		}
	}
	return CRYPTO_NONE
}
