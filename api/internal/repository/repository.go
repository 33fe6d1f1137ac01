package repository

import (
	"time"

	"payout/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Withdrawals interface {
	Create(tx *gorm.DB, withdrawal *domain.Withdrawals) error
	Find(tx *gorm.DB, withdrawalId string) (*domain.Withdrawals, error)
	FindByReference(tx *gorm.DB, reference string) (*domain.Withdrawals, error)
	// UpdateStatusIf flips status only when the stored status still equals
	// expected. Reports whether the row was claimed.
	UpdateStatusIf(tx *gorm.DB, withdrawalId string, expected, next domain.WithdrawalStatus, fields map[string]any) (bool, error)
	List(tx *gorm.DB, filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error)
	FindStuck(tx *gorm.DB, olderThan time.Time) ([]domain.Withdrawals, error)
}

type Profiles interface {
	Create(tx *gorm.DB, profile *domain.Profiles) error
	Find(tx *gorm.DB, userId string) (*domain.Profiles, error)
	// DecrementBalance subtracts amount in one statement, the balance
	// guard runs inside the update so the balance can never go negative.
	DecrementBalance(tx *gorm.DB, userId string, amount decimal.Decimal) (bool, error)
}

type Notices interface {
	Create(tx *gorm.DB, kind string, relationID uint, payload string) (*domain.Notices, error)
	New(tx *gorm.DB, count int) ([]domain.Notices, error)
	Find(tx *gorm.DB, noticeId string) (*domain.Notices, error)
	UpdateStatus(tx *gorm.DB, noticeId string, status string) error
}

type Repositories struct {
	Withdrawals Withdrawals
	Profiles    Profiles
	Notices     Notices
}

func New() *Repositories {
	return &Repositories{
		Withdrawals: InitWithdrawalsRepo(),
		Profiles:    InitProfilesRepo(),
		Notices:     InitNoticesRepo(),
	}
}
