package service

import (
	"sync"
	"testing"
	"time"

	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/logger"
	"payout/api/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// In-memory stand-ins for the postgres repos. A mutex guards every map so
// the concurrency tests race against the same claim semantics the
// conditional update gives us in the database.

type fakeWithdrawalsRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Withdrawals

	createdRefs []string
	// remaining Create calls that fail with a unique violation
	conflictNext int
}

var _ repository.Withdrawals = (*fakeWithdrawalsRepo)(nil)

func newFakeWithdrawalsRepo() *fakeWithdrawalsRepo {
	return &fakeWithdrawalsRepo{rows: map[string]*domain.Withdrawals{}}
}

func (f *fakeWithdrawalsRepo) Create(tx *gorm.DB, withdrawal *domain.Withdrawals) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createdRefs = append(f.createdRefs, withdrawal.Reference)

	if f.conflictNext > 0 {
		f.conflictNext--
		return &pgconn.PgError{Code: "23505"}
	}

	for _, row := range f.rows {
		if row.Reference == withdrawal.Reference {
			return &pgconn.PgError{Code: "23505"}
		}
	}

	clone := *withdrawal
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.rows[withdrawal.WithdrawalID] = &clone
	return nil
}

func (f *fakeWithdrawalsRepo) Find(tx *gorm.DB, withdrawalId string) (*domain.Withdrawals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[withdrawalId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (f *fakeWithdrawalsRepo) FindByReference(tx *gorm.DB, reference string) (*domain.Withdrawals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		if row.Reference == reference {
			clone := *row
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalsRepo) UpdateStatusIf(tx *gorm.DB, withdrawalId string, expected, next domain.WithdrawalStatus, fields map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[withdrawalId]
	if !ok || row.Status != expected {
		return false, nil
	}

	row.Status = next
	row.UpdatedAt = time.Now()
	for k, v := range fields {
		switch k {
		case "processed_at":
			if v == nil {
				row.ProcessedAt = nil
				continue
			}
			row.ProcessedAt = v.(*time.Time)
		case "admin_notes":
			row.AdminNotes = v.(string)
		}
	}
	return true, nil
}

func (f *fakeWithdrawalsRepo) List(tx *gorm.DB, filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []domain.Withdrawals
	for _, row := range f.rows {
		if filters.UserID != "" && row.UserID != filters.UserID {
			continue
		}
		if !filters.Status.IsNone() && row.Status != filters.Status {
			continue
		}
		matched = append(matched, *row)
	}

	total := int64(len(matched))

	if filters.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}

	return matched, total, nil
}

func (f *fakeWithdrawalsRepo) FindStuck(tx *gorm.DB, olderThan time.Time) ([]domain.Withdrawals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stuck []domain.Withdrawals
	for _, row := range f.rows {
		if row.Status == domain.WITHDRAWAL_PROCESSING && row.UpdatedAt.Before(olderThan) {
			stuck = append(stuck, *row)
		}
	}
	return stuck, nil
}

type fakeProfilesRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Profiles

	decrementErr error
}

var _ repository.Profiles = (*fakeProfilesRepo)(nil)

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{rows: map[string]*domain.Profiles{}}
}

func (f *fakeProfilesRepo) Create(tx *gorm.DB, profile *domain.Profiles) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *profile
	f.rows[profile.UserID] = &clone
	return nil
}

func (f *fakeProfilesRepo) Find(tx *gorm.DB, userId string) (*domain.Profiles, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (f *fakeProfilesRepo) DecrementBalance(tx *gorm.DB, userId string, amount decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.decrementErr != nil {
		return false, f.decrementErr
	}

	row, ok := f.rows[userId]
	if !ok || row.Balance.LessThan(amount) {
		return false, nil
	}
	row.Balance = row.Balance.Sub(amount)
	return true, nil
}

func (f *fakeProfilesRepo) balance(userId string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[userId].Balance
}

type fakeNoticesRepo struct {
	mu   sync.Mutex
	rows []*domain.Notices
}

var _ repository.Notices = (*fakeNoticesRepo)(nil)

func newFakeNoticesRepo() *fakeNoticesRepo {
	return &fakeNoticesRepo{}
}

func (f *fakeNoticesRepo) Create(tx *gorm.DB, kind string, relationID uint, payload string) (*domain.Notices, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	notice := &domain.Notices{
		NoticeID:   uuid.NewString(),
		Kind:       kind,
		RelationID: relationID,
		Payload:    payload,
		Status:     domain.NOTICE_NEW,
		CreatedAt:  time.Now(),
	}
	f.rows = append(f.rows, notice)
	return notice, nil
}

func (f *fakeNoticesRepo) New(tx *gorm.DB, count int) ([]domain.Notices, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var notices []domain.Notices
	for _, row := range f.rows {
		if row.Status == domain.NOTICE_NEW && len(notices) < count {
			notices = append(notices, *row)
		}
	}
	return notices, nil
}

func (f *fakeNoticesRepo) Find(tx *gorm.DB, noticeId string) (*domain.Notices, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		if row.NoticeID == noticeId {
			clone := *row
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNoticesRepo) UpdateStatus(tx *gorm.DB, noticeId string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		if row.NoticeID == noticeId {
			row.Status = status
		}
	}
	return nil
}

func (f *fakeNoticesRepo) countByKind(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int
	for _, row := range f.rows {
		if row.Kind == kind {
			n++
		}
	}
	return n
}

func newTestService() (*WithdrawalsService, *fakeWithdrawalsRepo, *fakeProfilesRepo, *fakeNoticesRepo) {
	withdrawals := newFakeWithdrawalsRepo()
	profiles := newFakeProfilesRepo()
	notices := newFakeNoticesRepo()

	conf := &config.Config{AdminEmail: "ops@payout.local"}
	l := logger.Init(conf)

	return NewWithdrawalsService(nil, withdrawals, profiles, notices, l, conf), withdrawals, profiles, notices
}

func seedProfile(profiles *fakeProfilesRepo, balance int64) *domain.Profiles {
	profile := &domain.Profiles{
		UserID:   gofakeit.UUID(),
		Username: gofakeit.Username(),
		Email:    gofakeit.Email(),
		Balance:  decimal.NewFromInt(balance),
	}
	profiles.Create(nil, profile)
	return profile
}

func TestInitiate(t *testing.T) {
	s, withdrawals, profiles, notices := newTestService()

	profile := seedProfile(profiles, 100)

	withdrawal, err := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, "0x71C7656EC7ab88b098defB751B7401B5f6d8976F")
	assert.NoError(t, err)
	assert.NotNil(t, withdrawal)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, withdrawal.Status)
	assert.NotEmpty(t, withdrawal.Reference)
	assert.NotEmpty(t, withdrawal.Narration)
	assert.Nil(t, withdrawal.ProcessedAt)

	// the balance only moves on approval
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(100)))

	stored, err := withdrawals.Find(nil, withdrawal.WithdrawalID)
	assert.NoError(t, err)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, stored.Status)

	// user letter, admin letter, ops webhook
	assert.Equal(t, 2, notices.countByKind(domain.NOTICE_EMAIL))
	assert.Equal(t, 1, notices.countByKind(domain.NOTICE_WEBHOOK))
}

func TestInitiateBelowMinimum(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	// a healthy balance does not rescue a sub-minimum amount
	profile := seedProfile(profiles, 1000000)

	_, err := s.Initiate(profile.UserID, decimal.NewFromInt(9), domain.CRYPTO_SOL, gofakeit.BitcoinAddress())
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)

	// and neither does an empty one change the verdict
	poor := seedProfile(profiles, 0)
	_, err = s.Initiate(poor.UserID, decimal.RequireFromString("9.99"), domain.CRYPTO_SOL, gofakeit.BitcoinAddress())
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)

	assert.Empty(t, withdrawals.rows)
}

func TestInitiateExactMinimum(t *testing.T) {
	s, _, profiles, _ := newTestService()

	profile := seedProfile(profiles, 10)

	withdrawal, err := s.Initiate(profile.UserID, decimal.NewFromInt(10), domain.CRYPTO_TON, gofakeit.UUID())
	assert.NoError(t, err)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, withdrawal.Status)
}

func TestInitiateInsufficientBalance(t *testing.T) {
	s, withdrawals, profiles, notices := newTestService()

	profile := seedProfile(profiles, 60)

	_, err := s.Initiate(profile.UserID, decimal.NewFromInt(70), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// no record, no notices
	assert.Empty(t, withdrawals.rows)
	assert.Empty(t, notices.rows)
}

func TestInitiateUnknownProfile(t *testing.T) {
	s, _, _, _ := newTestService()

	_, err := s.Initiate(gofakeit.UUID(), decimal.NewFromInt(50), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestInitiateUnauthenticated(t *testing.T) {
	s, _, _, _ := newTestService()

	_, err := s.Initiate("", decimal.NewFromInt(50), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestInitiateRetriesReferenceOnConflict(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	withdrawals.conflictNext = 2

	withdrawal, err := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.NoError(t, err)
	assert.Len(t, withdrawals.createdRefs, 3)
	assert.Equal(t, withdrawal.Reference, withdrawals.createdRefs[2])
}

func TestApprove(t *testing.T) {
	s, withdrawals, profiles, notices := newTestService()

	profile := seedProfile(profiles, 100)
	created, err := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.NoError(t, err)

	approved, err := s.Approve(created.WithdrawalID)
	assert.NoError(t, err)
	assert.Equal(t, domain.WITHDRAWAL_COMPLETED, approved.Status)
	assert.NotNil(t, approved.ProcessedAt)

	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(60)))

	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_COMPLETED, stored.Status)
	assert.NotNil(t, stored.ProcessedAt)

	// requested pair + completion letter, requested hook + completion hook
	assert.Equal(t, 3, notices.countByKind(domain.NOTICE_EMAIL))
	assert.Equal(t, 2, notices.countByKind(domain.NOTICE_WEBHOOK))
}

func TestApproveNotFound(t *testing.T) {
	s, _, _, _ := newTestService()

	_, err := s.Approve(gofakeit.UUID())
	assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)
}

func TestApproveTwice(t *testing.T) {
	s, _, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	_, err := s.Approve(created.WithdrawalID)
	assert.NoError(t, err)

	_, err = s.Approve(created.WithdrawalID)
	status, ok := domain.IsAlreadyProcessed(err)
	assert.True(t, ok)
	assert.Equal(t, domain.WITHDRAWAL_COMPLETED, status)

	// debited exactly once
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(60)))
}

func TestApproveConcurrent(t *testing.T) {
	s, _, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	const callers = 8

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Approve(created.WithdrawalID)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		if _, ok := domain.IsAlreadyProcessed(err); ok {
			losses++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, losses)

	// one debit no matter how many callers raced
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(60)))
}

func TestApproveDebitFailureReleasesClaim(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	profiles.decrementErr = gorm.ErrInvalidTransaction

	_, err := s.Approve(created.WithdrawalID)
	assert.ErrorIs(t, err, domain.ErrBalanceUpdate)

	// back to pending, untouched
	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, stored.Status)
	assert.Nil(t, stored.ProcessedAt)
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(100)))

	// the withdrawal stays approvable
	profiles.decrementErr = nil
	approved, err := s.Approve(created.WithdrawalID)
	assert.NoError(t, err)
	assert.Equal(t, domain.WITHDRAWAL_COMPLETED, approved.Status)
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(60)))
}

func TestApproveShortBalanceReleasesClaim(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	// enough at initiation, spent away before approval
	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	profiles.mu.Lock()
	profiles.rows[profile.UserID].Balance = decimal.NewFromInt(5)
	profiles.mu.Unlock()

	_, err := s.Approve(created.WithdrawalID)
	assert.ErrorIs(t, err, domain.ErrBalanceUpdate)

	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, stored.Status)
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(5)))
}

func TestReject(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	notes := "wallet flagged by compliance;\nask the user for a fresh address"

	rejected, err := s.Reject(created.WithdrawalID, notes)
	assert.NoError(t, err)
	assert.Equal(t, domain.WITHDRAWAL_REJECTED, rejected.Status)
	assert.Equal(t, notes, rejected.AdminNotes)
	assert.NotNil(t, rejected.ProcessedAt)

	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, notes, stored.AdminNotes)

	// rejection never touches funds
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(100)))
}

func TestRejectThenApprove(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	_, err := s.Reject(created.WithdrawalID, "duplicate request")
	assert.NoError(t, err)

	_, err = s.Approve(created.WithdrawalID)
	status, ok := domain.IsAlreadyProcessed(err)
	assert.True(t, ok)
	assert.Equal(t, domain.WITHDRAWAL_REJECTED, status)

	// the losing call changed nothing
	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_REJECTED, stored.Status)
	assert.Equal(t, "duplicate request", stored.AdminNotes)
	assert.True(t, profiles.balance(profile.UserID).Equal(decimal.NewFromInt(100)))
}

func TestRejectMissingProfile(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	// profile vanishes between initiation and review
	profiles.mu.Lock()
	delete(profiles.rows, profile.UserID)
	profiles.mu.Unlock()

	rejected, err := s.Reject(created.WithdrawalID, "account closed")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	// the record is rejected even though the call reports the lookup failure
	assert.NotNil(t, rejected)
	assert.Equal(t, domain.WITHDRAWAL_REJECTED, rejected.Status)

	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_REJECTED, stored.Status)
	assert.Equal(t, "account closed", stored.AdminNotes)
}

func TestApproveMissingProfileReleasesClaim(t *testing.T) {
	s, withdrawals, profiles, _ := newTestService()

	profile := seedProfile(profiles, 100)
	created, _ := s.Initiate(profile.UserID, decimal.NewFromInt(40), domain.CRYPTO_ETH, gofakeit.UUID())

	profiles.mu.Lock()
	delete(profiles.rows, profile.UserID)
	profiles.mu.Unlock()

	_, err := s.Approve(created.WithdrawalID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	// approval backed off, nothing was debited so pending is safe
	stored, _ := withdrawals.Find(nil, created.WithdrawalID)
	assert.Equal(t, domain.WITHDRAWAL_PENDING, stored.Status)
	assert.Nil(t, stored.ProcessedAt)
}

func TestListForUserScopesToOwner(t *testing.T) {
	s, _, profiles, _ := newTestService()

	alice := seedProfile(profiles, 1000)
	bob := seedProfile(profiles, 1000)

	for i := 0; i < 3; i++ {
		_, err := s.Initiate(alice.UserID, decimal.NewFromInt(20), domain.CRYPTO_ETH, gofakeit.UUID())
		assert.NoError(t, err)
	}
	_, err := s.Initiate(bob.UserID, decimal.NewFromInt(20), domain.CRYPTO_ETH, gofakeit.UUID())
	assert.NoError(t, err)

	// a caller cannot list somebody else by smuggling a filter
	rows, total, err := s.ListForUser(alice.UserID, domain.WithdrawalFilters{UserID: bob.UserID})
	assert.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, row := range rows {
		assert.Equal(t, alice.UserID, row.UserID)
	}

	rows, total, err = s.ListAll(domain.WithdrawalFilters{})
	assert.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, rows, 4)
}

func TestListFiltersByStatus(t *testing.T) {
	s, _, profiles, _ := newTestService()

	profile := seedProfile(profiles, 1000)

	first, _ := s.Initiate(profile.UserID, decimal.NewFromInt(20), domain.CRYPTO_ETH, gofakeit.UUID())
	second, _ := s.Initiate(profile.UserID, decimal.NewFromInt(30), domain.CRYPTO_ETH, gofakeit.UUID())

	_, err := s.Approve(first.WithdrawalID)
	assert.NoError(t, err)

	rows, total, err := s.ListAll(domain.WithdrawalFilters{Status: domain.WITHDRAWAL_PENDING})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, second.WithdrawalID, rows[0].WithdrawalID)
}

func TestSweepReportsStuckOnce(t *testing.T) {
	withdrawals := newFakeWithdrawalsRepo()
	notices := newFakeNoticesRepo()

	conf := &config.Config{}
	l := logger.Init(conf)
	sweeper := NewSweeperService(nil, withdrawals, notices, l, conf)

	staleAt := time.Now().Add(-time.Hour)
	withdrawals.rows["w-1"] = &domain.Withdrawals{
		WithdrawalID: "w-1",
		UserID:       gofakeit.UUID(),
		Amount:       decimal.NewFromInt(40),
		Crypto:       "eth",
		Reference:    domain.NewReference(),
		Status:       domain.WITHDRAWAL_PROCESSING,
		Model:        domain.Model{UpdatedAt: staleAt},
	}

	sweeper.sweep(DEFAULT_STUCK_AFTER)
	assert.Equal(t, 1, notices.countByKind(domain.NOTICE_WEBHOOK))

	// already alerted, the next pass stays quiet
	sweeper.sweep(DEFAULT_STUCK_AFTER)
	assert.Equal(t, 1, notices.countByKind(domain.NOTICE_WEBHOOK))

	// a fresh processing row is not stuck
	withdrawals.rows["w-2"] = &domain.Withdrawals{
		WithdrawalID: "w-2",
		UserID:       gofakeit.UUID(),
		Amount:       decimal.NewFromInt(40),
		Crypto:       "eth",
		Reference:    domain.NewReference(),
		Status:       domain.WITHDRAWAL_PROCESSING,
		Model:        domain.Model{UpdatedAt: time.Now()},
	}

	sweeper.sweep(DEFAULT_STUCK_AFTER)
	assert.Equal(t, 1, notices.countByKind(domain.NOTICE_WEBHOOK))
}
