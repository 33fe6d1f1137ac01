package nats

import (
	"fmt"
	"sync"

	"payout/mailer/mail/config"
	"payout/pkg/nats/natsdomain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

func (app *App) natsCoreHandler(msg *nats.Msg) {

	switch msg.Subject {
	case natsdomain.SubjSendNow.String():
		app.SendNowHandler(msg)
	case natsdomain.SubjPing.String():
		msg.Respond([]byte("pong"))
	}

}

func (app *App) consumerHandler(msg jetstream.Msg) {

	meta, _ := msg.Metadata()
	if meta != nil {
		if meta.NumDelivered > 6 {
			fmt.Println("Too many deliveries", meta.NumDelivered)
			msg.Ack()
			return
		}
	}

	switch msg.Subject() {
	case natsdomain.SubjJsEmail.String():
		fmt.Println("subject: ", msg.Subject())
		app.EmailNoticeHandler(msg)

	default:
		fmt.Println("invalid subject: " + msg.Subject())
	}
}

const WORKERS = 10

func (app *App) Run(c *config.Config, ns *natsdomain.Ns) {

	_, err := app.C.Consume(app.consumerHandler)
	if err != nil {
		fmt.Println("Consume error: ", err)
		return
	}

	//  nats core

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		for range WORKERS {
			_, err := ns.Nc.QueueSubscribe("notices.core.*", "letter_workers", app.natsCoreHandler)
			if err != nil {
				fmt.Println("QueueSubscribe error: ", err)
				wg.Done()
				break
			}
		}
	}()
	wg.Wait()

	// jetstream
}
