package service

import (
	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/infra/nats"
	"payout/api/internal/logger"
	"payout/api/internal/repository"
	"payout/pkg/nats/natsdomain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Withdrawals interface {
	// Initiate creates a pending withdrawal, the balance is untouched
	Initiate(userId string, amount decimal.Decimal, crypto domain.Crypto, walletAddress string) (*domain.Withdrawals, error)
	// Approve debits the profile and completes the withdrawal
	Approve(withdrawalId string) (*domain.Withdrawals, error)
	// Reject closes the withdrawal, the balance is untouched
	Reject(withdrawalId string, adminNotes string) (*domain.Withdrawals, error)
	Find(withdrawalId string) (*domain.Withdrawals, error)
	ListForUser(userId string, filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error)
	ListAll(filters domain.WithdrawalFilters) ([]domain.Withdrawals, int64, error)
}

type Profiles interface {
	Find(userId string) (*domain.Profiles, error)
	Create(profile *domain.Profiles) error
}

type Notices interface {
	// pushes a failed email notice straight to the mailer
	Resend(noticeId string) (relay string, err error)

	// for autostart only
	StartDispatch()
}

type DeliveryReceipts interface {
	StartWaitReceipts()
}

type Sweeper interface {
	StartSweep()
}

type QrCodes interface {
	// generates qr code and saves it to cache
	New(address string) (string, error)
	// returns qr code from cache or generates new one
	FindOrNew(address string) (string, error)
}

type WebhookSender interface {
	Send(url string, info domain.PayloadWebhook) error
	UpdateList(proxies []string)
	GetList() []string
}

type Services struct {
	// autostart
	Notices          Notices
	DeliveryReceipts DeliveryReceipts
	Sweeper          Sweeper

	Withdrawals   Withdrawals
	Profiles      Profiles
	QrCodes       QrCodes
	WebhookSender WebhookSender
}

func NewServices(ns *natsdomain.Ns, db *gorm.DB, l logger.Logger, config *config.Config) *Services {
	n := &nats.NatsInfra{Ns: ns}

	withdrawalsRepo := repository.InitWithdrawalsRepo()
	profilesRepo := repository.InitProfilesRepo()
	noticesRepo := repository.InitNoticesRepo()

	webhookSender := NewWebhookSenderService(config.ProxyList, config.WebhookSecret, l)

	return &Services{
		Notices:          NewNoticesService(db, noticesRepo, webhookSender, n, l, config),
		DeliveryReceipts: NewDeliveryReceiptsService(db, n, l, noticesRepo, config),
		Sweeper:          NewSweeperService(db, withdrawalsRepo, noticesRepo, l, config),
		Withdrawals:      NewWithdrawalsService(db, withdrawalsRepo, profilesRepo, noticesRepo, l, config),
		Profiles:         NewProfilesService(db, profilesRepo),
		QrCodes:          NewQrCodesService(),
		WebhookSender:    webhookSender,
	}
}
