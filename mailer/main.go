package main

import (
	"payout/mailer/mail/config"
	"payout/mailer/mail/nats"
	"payout/mailer/mail/smtp"
	"payout/pkg/dlog"
)

func main() {

	dlog := dlog.Init()

	config := config.ReadConfig()
	ns, c := nats.Init(config)

	sender := smtp.Init(config)

	app := nats.App{
		Smtp:   sender,
		Config: config,
		Ns:     ns,
		C:      c,
		Dlog:   dlog,
	}

	app.Run(config, ns)
}
