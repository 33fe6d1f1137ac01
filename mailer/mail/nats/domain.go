package nats

import (
	"payout/mailer/mail/config"
	"payout/mailer/mail/smtp"
	"payout/pkg/dlog"
	"payout/pkg/nats/natsdomain"

	"github.com/nats-io/nats.go/jetstream"
)

type App struct {
	Smtp *smtp.Sender

	Config *config.Config
	Ns     *natsdomain.Ns
	C      jetstream.Consumer
	Dlog   dlog.Dlog
}
