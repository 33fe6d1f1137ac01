package service

import (
	"encoding/json"
	"fmt"
	"time"

	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/infra/postgres"
	"payout/api/internal/logger"
	"payout/api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// references come with a random suffix, on a unique conflict the
	// insert retries with a fresh one
	CREATE_ATTEMPTS = 3

	DEFAULT_PAGE_LIMIT = 20
	MAX_PAGE_LIMIT     = 100
)

type WithdrawalsService struct {
	repo     repository.Withdrawals
	profiles repository.Profiles
	notices  repository.Notices

	config *config.Config
	db     *gorm.DB
	l      logger.Logger
}

func NewWithdrawalsService(db *gorm.DB, repo repository.Withdrawals, profiles repository.Profiles, notices repository.Notices, l logger.Logger, config *config.Config) *WithdrawalsService {
	return &WithdrawalsService{repo: repo, profiles: profiles, notices: notices, config: config, db: db, l: l}
}

// Initiate creates a pending withdrawal. The balance is only checked here,
// funds leave the profile when an admin approves.
func (s *WithdrawalsService) Initiate(userId string, amount decimal.Decimal, crypto domain.Crypto, walletAddress string) (*domain.Withdrawals, error) {
	if userId == "" {
		return nil, domain.ErrUnauthenticated
	}

	// the minimum applies before any balance check
	if amount.LessThan(domain.MinWithdrawal) {
		return nil, domain.ErrBelowMinimum
	}

	profile, err := s.profiles.Find(s.db, userId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if profile.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	withdrawal := &domain.Withdrawals{
		WithdrawalID:  uuid.NewString(),
		UserID:        userId,
		Amount:        amount,
		Crypto:        crypto.ToString(),
		WalletAddress: walletAddress,
		Narration:     domain.NewNarration(amount, crypto, walletAddress),
		Status:        domain.WITHDRAWAL_PENDING,
	}

	for attempts := 1; ; attempts++ {
		withdrawal.Reference = domain.NewReference()

		err = s.repo.Create(s.db, withdrawal)
		if err == nil {
			break
		}
		if !postgres.IsUniqueViolation(err) || attempts >= CREATE_ATTEMPTS {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	s.notifyRequested(profile, withdrawal)

	return withdrawal, nil
}

// Approve moves a pending withdrawal to completed and debits the profile.
// The pending -> processing flip is the claim, only one caller can win it,
// so the decrement below runs at most once per withdrawal.
func (s *WithdrawalsService) Approve(withdrawalId string) (*domain.Withdrawals, error) {
	withdrawal, err := s.repo.Find(s.db, withdrawalId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	now := time.Now()

	claimed, err := s.repo.UpdateStatusIf(s.db, withdrawalId, domain.WITHDRAWAL_PENDING, domain.WITHDRAWAL_PROCESSING, map[string]any{"processed_at": &now})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !claimed {
		return nil, s.alreadyProcessed(withdrawalId)
	}

	profile, err := s.profiles.Find(s.db, withdrawal.UserID)
	if err != nil {
		s.release(withdrawal)
		if postgres.IsNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	debited, err := s.profiles.DecrementBalance(s.db, withdrawal.UserID, withdrawal.Amount)
	if err != nil {
		s.release(withdrawal)
		return nil, fmt.Errorf("%w: %v", domain.ErrBalanceUpdate, err)
	}
	if !debited {
		// the profile existed a moment ago, so the funds are short
		s.release(withdrawal)
		return nil, domain.ErrBalanceUpdate
	}

	finalized, err := s.repo.UpdateStatusIf(s.db, withdrawalId, domain.WITHDRAWAL_PROCESSING, domain.WITHDRAWAL_COMPLETED, nil)
	if err != nil || !finalized {
		// the debit landed but the status did not. Do not re-credit,
		// the stuck sweep reports processing rows for operator review.
		errid := logger.GenErrorId()
		s.l.TemplWithdrawalErr("finalize after debit failed: "+logger.AnyToStr(err), errid, withdrawalId, withdrawal.Amount, withdrawal.Crypto, logger.NA, withdrawal.UserID, logger.NA)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return nil, domain.ErrPersistence
	}

	withdrawal.Status = domain.WITHDRAWAL_COMPLETED
	withdrawal.ProcessedAt = &now

	s.notifyProcessed(profile, withdrawal)

	return withdrawal, nil
}

// Reject moves a pending withdrawal to rejected. The balance is never
// touched, nothing was debited at initiation.
func (s *WithdrawalsService) Reject(withdrawalId string, adminNotes string) (*domain.Withdrawals, error) {
	withdrawal, err := s.repo.Find(s.db, withdrawalId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	now := time.Now()

	rejected, err := s.repo.UpdateStatusIf(s.db, withdrawalId, domain.WITHDRAWAL_PENDING, domain.WITHDRAWAL_REJECTED, map[string]any{"processed_at": &now, "admin_notes": adminNotes})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !rejected {
		return nil, s.alreadyProcessed(withdrawalId)
	}

	withdrawal.Status = domain.WITHDRAWAL_REJECTED
	withdrawal.AdminNotes = adminNotes
	withdrawal.ProcessedAt = &now

	// the record is rejected either way, a missing profile only changes
	// what the caller is told
	profile, err := s.profiles.Find(s.db, withdrawal.UserID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return withdrawal, domain.ErrProfileNotFound
		}
		return withdrawal, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.notifyProcessed(profile, withdrawal)

	return withdrawal, nil
}

func (s *WithdrawalsService) Find(withdrawalId string) (*domain.Withdrawals, error) {
	withdrawal, err := s.repo.Find(s.db, withdrawalId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return withdrawal, nil
}

func (s *WithdrawalsService) ListForUser(userId string, filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error) {
	if userId == "" {
		return nil, 0, domain.ErrUnauthenticated
	}
	filters.UserID = userId
	return s.list(filters)
}

func (s *WithdrawalsService) ListAll(filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error) {
	return s.list(filters)
}

func (s *WithdrawalsService) list(filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error) {
	if filters.Limit <= 0 || filters.Limit > MAX_PAGE_LIMIT {
		filters.Limit = DEFAULT_PAGE_LIMIT
	}

	withdrawals, total, err := s.repo.List(s.db, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return withdrawals, total, nil
}

// alreadyProcessed reads the current status for a claim that failed.
// Safe to repeat, the winning call already did the work.
func (s *WithdrawalsService) alreadyProcessed(withdrawalId string) error {
	current, err := s.repo.Find(s.db, withdrawalId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return domain.ErrWithdrawalNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return &domain.AlreadyProcessedError{Status: current.Status}
}

// release gives the claim back, the withdrawal stays eligible for another
// approval attempt. processed_at is cleared so the row looks untouched.
func (s *WithdrawalsService) release(withdrawal *domain.Withdrawals) {
	reverted, err := s.repo.UpdateStatusIf(s.db, withdrawal.WithdrawalID, domain.WITHDRAWAL_PROCESSING, domain.WITHDRAWAL_PENDING, map[string]any{"processed_at": nil})
	if err != nil || !reverted {
		errid := logger.GenErrorId()
		s.l.TemplWithdrawalErr("release claim failed, withdrawal stuck in processing: "+logger.AnyToStr(err), errid, withdrawal.WithdrawalID, withdrawal.Amount, withdrawal.Crypto, logger.NA, withdrawal.UserID, logger.NA)
	}
}

func (s *WithdrawalsService) notifyRequested(profile *domain.Profiles, withdrawal *domain.Withdrawals) {
	s.enqueueEmail(withdrawal, profile.Email,
		"Withdrawal request received",
		fmt.Sprintf("Hi %s, your withdrawal request %s for %s %s is pending review.", profile.Username, withdrawal.Reference, withdrawal.Amount.String(), withdrawal.Crypto))

	s.enqueueEmail(withdrawal, s.config.AdminEmail,
		"New withdrawal request",
		fmt.Sprintf("%s (%s) requested %s %s to wallet %s. Reference: %s", profile.Username, profile.Email, withdrawal.Amount.String(), withdrawal.Crypto, withdrawal.WalletAddress, withdrawal.Reference))

	s.enqueueWebhook(withdrawal, domain.WEBHOOK_EVENT_REQUESTED)
}

func (s *WithdrawalsService) notifyProcessed(profile *domain.Profiles, withdrawal *domain.Withdrawals) {
	switch withdrawal.Status {
	case domain.WITHDRAWAL_COMPLETED:
		s.enqueueEmail(withdrawal, profile.Email,
			"Withdrawal completed",
			fmt.Sprintf("Hi %s, your withdrawal %s for %s %s was approved and the funds were debited.", profile.Username, withdrawal.Reference, withdrawal.Amount.String(), withdrawal.Crypto))
		s.enqueueWebhook(withdrawal, domain.WEBHOOK_EVENT_COMPLETED)
	case domain.WITHDRAWAL_REJECTED:
		body := fmt.Sprintf("Hi %s, your withdrawal %s for %s %s was rejected.", profile.Username, withdrawal.Reference, withdrawal.Amount.String(), withdrawal.Crypto)
		if withdrawal.AdminNotes != "" {
			body += " Reason: " + withdrawal.AdminNotes
		}
		s.enqueueEmail(withdrawal, profile.Email, "Withdrawal rejected", body)
		s.enqueueWebhook(withdrawal, domain.WEBHOOK_EVENT_REJECTED)
	}
}

// notices are advisory. Enqueue failures are logged and never surface to
// the caller, the stored withdrawal is the source of truth.
func (s *WithdrawalsService) enqueueEmail(withdrawal *domain.Withdrawals, to, subject, body string) {
	payload, err := json.Marshal(domain.PayloadEmail{To: to, Subject: subject, Body: body, Reference: withdrawal.Reference})
	if err != nil {
		s.l.TemplNoticeErr("marshal email payload error", logger.GenErrorId(), logger.NA, domain.NOTICE_EMAIL, err)
		return
	}

	if _, err := s.notices.Create(s.db, domain.NOTICE_EMAIL, withdrawal.ID, string(payload)); err != nil {
		s.l.TemplNoticeErr("enqueue email notice error", logger.GenErrorId(), logger.NA, domain.NOTICE_EMAIL, err)
	}
}

func (s *WithdrawalsService) enqueueWebhook(withdrawal *domain.Withdrawals, event string) {
	payload, err := json.Marshal(domain.PayloadWebhook{
		Event:     event,
		Reference: withdrawal.Reference,
		UserID:    withdrawal.UserID,
		Amount:    withdrawal.Amount.String(),
		Status:    withdrawal.Status.ToString(),
		Notes:     withdrawal.AdminNotes,
	})
	if err != nil {
		s.l.TemplNoticeErr("marshal webhook payload error", logger.GenErrorId(), logger.NA, domain.NOTICE_WEBHOOK, err)
		return
	}

	if _, err := s.notices.Create(s.db, domain.NOTICE_WEBHOOK, withdrawal.ID, string(payload)); err != nil {
		s.l.TemplNoticeErr("enqueue webhook notice error", logger.GenErrorId(), logger.NA, domain.NOTICE_WEBHOOK, err)
	}
}
