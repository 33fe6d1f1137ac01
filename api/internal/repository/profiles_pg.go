package repository

import (
	"payout/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProfilesRepo struct {
}

func InitProfilesRepo() *ProfilesRepo {
	return &ProfilesRepo{}
}

func (r *ProfilesRepo) Create(tx *gorm.DB, profile *domain.Profiles) error {
	return tx.Create(profile).Error
}

func (r *ProfilesRepo) Find(tx *gorm.DB, userId string) (*domain.Profiles, error) {
	var profile domain.Profiles
	return &profile, tx.Where(&domain.Profiles{UserID: userId}).First(&profile).Error
}

// DecrementBalance runs balance = balance - amount guarded by
// balance >= amount in the same statement. False means the profile is
// missing or the funds are short, the caller distinguishes with Find.
func (r *ProfilesRepo) DecrementBalance(tx *gorm.DB, userId string, amount decimal.Decimal) (bool, error) {
	res := tx.Model(&domain.Profiles{}).
		Where("user_id = ? AND balance >= ?", userId, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
