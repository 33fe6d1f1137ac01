package domain

import "github.com/shopspring/decimal"

type Profiles struct {
	Model
	ID uint `gorm:"primaryKey"`

	UserID   string          `gorm:"size:36;unique;not null"`
	Username string          `gorm:"not null"`
	Email    string          `gorm:"not null"`
	Balance  decimal.Decimal `gorm:"type:numeric;default:0"`
}
