package service

import (
	"encoding/json"
	"fmt"
	"time"

	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/infra/cache"
	"payout/api/internal/logger"
	"payout/api/internal/repository"

	"gorm.io/gorm"
)

const (
	SWEEP_INTERVAL      = 5 * time.Minute
	DEFAULT_STUCK_AFTER = 15 * time.Minute

	// a stuck withdrawal is re-reported after this long
	REALERT_AFTER = time.Hour
)

// SweeperService reports withdrawals that sat in processing longer than
// the configured window. A crash between the debit and the finalize
// leaves such rows behind. The sweep never mutates them, whether the
// debit landed is for an operator to establish.
type SweeperService struct {
	repo    repository.Withdrawals
	notices repository.Notices

	alerted *cache.Cache
	config  *config.Config
	db      *gorm.DB
	l       logger.Logger
}

func NewSweeperService(db *gorm.DB, repo repository.Withdrawals, notices repository.Notices, l logger.Logger, config *config.Config) *SweeperService {
	return &SweeperService{repo: repo, notices: notices, alerted: cache.InitStorage(), config: config, db: db, l: l}
}

func (s *SweeperService) StartSweep() {
	stuckAfter := s.config.Withdrawals.StuckAfter
	if stuckAfter <= 0 {
		stuckAfter = DEFAULT_STUCK_AFTER
	}

	fmt.Println("STUCK SWEEP START")

	go func() {
		for {
			s.sweep(stuckAfter)
			time.Sleep(SWEEP_INTERVAL)
		}
	}()

}

func (s *SweeperService) sweep(stuckAfter time.Duration) {
	stuck, err := s.repo.FindStuck(s.db, time.Now().Add(-stuckAfter))
	if err != nil {
		fmt.Println("FindStuck error", err)
		return
	}

	for _, withdrawal := range stuck {
		if s.alerted.Load(withdrawal.WithdrawalID) != nil {
			continue
		}

		errid := logger.GenErrorId()
		s.l.TemplWithdrawalErr("withdrawal stuck in processing", errid, withdrawal.WithdrawalID, withdrawal.Amount, withdrawal.Crypto, logger.NA, withdrawal.UserID, logger.NA)

		s.enqueueStuckAlert(withdrawal)

		s.alerted.Set(withdrawal.WithdrawalID, true, REALERT_AFTER)
	}
}

func (s *SweeperService) enqueueStuckAlert(withdrawal domain.Withdrawals) {
	payload, err := json.Marshal(domain.PayloadWebhook{
		Event:     domain.WEBHOOK_EVENT_STUCK,
		Reference: withdrawal.Reference,
		UserID:    withdrawal.UserID,
		Amount:    withdrawal.Amount.String(),
		Status:    withdrawal.Status.ToString(),
	})
	if err != nil {
		s.l.TemplNoticeErr("marshal stuck payload error", logger.GenErrorId(), logger.NA, domain.NOTICE_WEBHOOK, err)
		return
	}

	if _, err := s.notices.Create(s.db, domain.NOTICE_WEBHOOK, withdrawal.ID, string(payload)); err != nil {
		s.l.TemplNoticeErr("enqueue stuck alert error", logger.GenErrorId(), logger.NA, domain.NOTICE_WEBHOOK, err)
	}
}
