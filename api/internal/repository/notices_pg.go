package repository

import (
	"encoding/json"
	"fmt"

	"payout/api/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoticesRepo struct {
}

func InitNoticesRepo() *NoticesRepo {
	return &NoticesRepo{}
}

// Create enqueues an outbox row. The NoticeID doubles as the jetstream
// message id, so redelivered dispatch attempts dedupe on the broker.
func (r *NoticesRepo) Create(tx *gorm.DB, kind string, relationID uint, payload string) (*domain.Notices, error) {
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("invalid payload: %s", payload)
	}

	notice := domain.Notices{
		NoticeID:   uuid.NewString(),
		Kind:       kind,
		RelationID: relationID,
		Payload:    payload,
		Status:     domain.NOTICE_NEW,
	}
	return &notice, tx.Create(&notice).Error
}

func (r *NoticesRepo) New(tx *gorm.DB, count int) ([]domain.Notices, error) {
	var notices []domain.Notices
	return notices, tx.Where("status = ?", domain.NOTICE_NEW).Order("id asc").Limit(count).Find(&notices).Error
}

func (r *NoticesRepo) Find(tx *gorm.DB, noticeId string) (*domain.Notices, error) {
	var notice domain.Notices
	return &notice, tx.Where(&domain.Notices{NoticeID: noticeId}).First(&notice).Error
}

func (r *NoticesRepo) UpdateStatus(tx *gorm.DB, noticeId string, status string) error {
	return tx.Model(&domain.Notices{}).Where(&domain.Notices{NoticeID: noticeId}).Update("status", status).Error
}
