package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"payout/mailer/mail/smtp"
	"payout/pkg/nats/natsdomain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EmailNoticeHandler takes one letter off the notices stream and hands
// it to smtp. A receipt goes back on the response subject either way.
func (app *App) EmailNoticeHandler(msg jetstream.Msg) {

	letterMsg, err := Unmarshal[natsdomain.ReqEmailNotice](msg.Data())
	if err != nil {
		fmt.Println("error: " + err.Error())
		return
	}

	if letterMsg.To == "" {
		fmt.Println("error: letter without recipient, notice " + letterMsg.NoticeId)
		msg.Ack()
		return
	}

	app.SendLetter(msg, letterMsg)
}

// SendLetter acks the message whatever happens. Send already walks the
// whole relay rotation, when it fails there is no relay left worth a
// redelivery and the receipt tells the api so.
func (app *App) SendLetter(msg jetstream.Msg, letterMsg *natsdomain.ReqEmailNotice) {
	defer msg.Ack()

	md, _ := msg.Metadata()
	if md != nil {
		fmt.Println("NUM DELIVERED", md.NumDelivered)
	}

	relay, err := app.Smtp.Send(smtp.Letter{
		To:        letterMsg.To,
		Subject:   letterMsg.Subject,
		Body:      letterMsg.Body,
		Reference: letterMsg.Reference,
	})
	if err != nil {
		slog.Debug(err.Error())
		app.deliveryError(err, letterMsg.NoticeId)
		return
	}

	app.deliveryOk(letterMsg.NoticeId, relay)
}

// SendNowHandler skips the stream, sends synchronously and replies with
// the relay that took the letter.
func (app *App) SendNowHandler(msg *nats.Msg) {
	letterMsg, err := Unmarshal[natsdomain.ReqEmailNotice](msg.Data)
	if err != nil {
		fmt.Println("error: " + err.Error())
		msg.Respond([]byte("error: " + err.Error()))
		return
	}

	relay, err := app.Smtp.Send(smtp.Letter{
		To:        letterMsg.To,
		Subject:   letterMsg.Subject,
		Body:      letterMsg.Body,
		Reference: letterMsg.Reference,
	})
	if err != nil {
		fmt.Println("error: " + err.Error())
		msg.Respond([]byte("error: " + err.Error()))
		return
	}

	err = msg.Respond([]byte("ok: " + relay))
	if err != nil {
		fmt.Println("error: " + err.Error())
		return
	}
}

// receipts

func (app *App) deliveryError(err error, noticeId string) {
	data, merr := json.Marshal(DeliveryFormat(noticeId, "", err))
	if merr != nil {
		fmt.Println("marshal error: ", merr)
		return
	}

	_, merr = app.Ns.Js.Publish(context.Background(), natsdomain.SubjResDelivery.String(), data, jetstream.WithMsgID(natsdomain.NewMsgId(noticeId, natsdomain.MsgActionError)))
	if merr != nil {
		fmt.Println("publish error: ", merr)
		return
	}
}

func (app *App) deliveryOk(noticeId string, relay string) {
	data, err := json.Marshal(DeliveryFormat(noticeId, relay, nil))
	if err != nil {
		slog.Debug(err.Error())
		return
	}

	_, err = app.Ns.Js.Publish(context.Background(), natsdomain.SubjResDelivery.String(), data, jetstream.WithMsgID(natsdomain.NewMsgId(noticeId, natsdomain.MsgActionDelivery)))
	if err != nil {
		slog.Debug(err.Error())
		return
	}
	fmt.Println("receipt sent: ", noticeId)
}
