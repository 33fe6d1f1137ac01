package repository

import (
	"strings"
	"time"

	"payout/api/internal/domain"

	"gorm.io/gorm"
)

type WithdrawalsRepo struct {
}

func InitWithdrawalsRepo() *WithdrawalsRepo {
	return &WithdrawalsRepo{}
}

func (r *WithdrawalsRepo) Create(tx *gorm.DB, withdrawal *domain.Withdrawals) error {
	return tx.Create(withdrawal).Error
}

func (r *WithdrawalsRepo) Find(tx *gorm.DB, withdrawalId string) (*domain.Withdrawals, error) {
	var withdrawals domain.Withdrawals
	return &withdrawals, tx.Where(&domain.Withdrawals{WithdrawalID: withdrawalId}).First(&withdrawals).Error
}

func (r *WithdrawalsRepo) FindByReference(tx *gorm.DB, reference string) (*domain.Withdrawals, error) {
	var withdrawals domain.Withdrawals
	return &withdrawals, tx.Where(&domain.Withdrawals{Reference: reference}).First(&withdrawals).Error
}

// UpdateStatusIf is the claim primitive of the lifecycle. The status
// comparison happens inside the UPDATE, so two concurrent callers can
// never both see RowsAffected == 1 for the same transition.
func (r *WithdrawalsRepo) UpdateStatusIf(tx *gorm.DB, withdrawalId string, expected, next domain.WithdrawalStatus, fields map[string]any) (bool, error) {
	updates := map[string]any{"status": next}
	for column, value := range fields {
		updates[column] = value
	}

	res := tx.Model(&domain.Withdrawals{}).
		Where("withdrawal_id = ? AND status = ?", withdrawalId, expected).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

var withdrawalSortColumns = map[string]string{
	"created_at":   "withdrawals.created_at",
	"processed_at": "withdrawals.processed_at",
	"amount":       "withdrawals.amount",
	"status":       "withdrawals.status",
	"reference":    "withdrawals.reference",
}

func (r *WithdrawalsRepo) List(tx *gorm.DB, filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error) {
	q := tx.Model(&domain.Withdrawals{})

	if filters.UserID != "" {
		q = q.Where("withdrawals.user_id = ?", filters.UserID)
	}
	if !filters.Status.IsNone() {
		q = q.Where("withdrawals.status = ?", filters.Status)
	}
	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		q = q.Joins("LEFT JOIN profiles ON profiles.user_id = withdrawals.user_id").
			Where("withdrawals.reference ILIKE ? OR withdrawals.wallet_address ILIKE ? OR profiles.username ILIKE ? OR profiles.email ILIKE ?",
				search, search, search, search)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy, ok := withdrawalSortColumns[filters.SortBy]
	if !ok {
		sortBy = "withdrawals.created_at"
	}
	order := "desc"
	if strings.EqualFold(filters.Order, "asc") {
		order = "asc"
	}
	q = q.Order(sortBy + " " + order).Offset(filters.Offset)
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}

	var withdrawals []domain.Withdrawals
	return withdrawals, total, q.Find(&withdrawals).Error
}

// FindStuck returns rows claimed to processing before olderThan. A crash
// between claim and finalize leaves such rows, the sweep reports them.
func (r *WithdrawalsRepo) FindStuck(tx *gorm.DB, olderThan time.Time) ([]domain.Withdrawals, error) {
	var withdrawals []domain.Withdrawals
	return withdrawals, tx.
		Where("status = ? AND updated_at < ?", domain.WITHDRAWAL_PROCESSING, olderThan).
		Find(&withdrawals).Error
}
