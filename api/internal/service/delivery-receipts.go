package service

import (
	"context"
	"fmt"
	"time"

	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/infra/nats"
	"payout/api/internal/logger"
	"payout/api/internal/repository"
	"payout/pkg/nats/natsdomain"
	"payout/pkg/utils"

	"github.com/nats-io/nats.go/jetstream"
	"gorm.io/gorm"
)

// DeliveryReceiptsService closes the loop on email notices. The mailer
// reports every letter on the response subject and the receipt moves the
// outbox row from sent to done or failed.
type DeliveryReceiptsService struct {
	notices repository.Notices

	config    *config.Config
	c         jetstream.Consumer
	l         logger.Logger
	db        *gorm.DB
	natsinfra *nats.NatsInfra
}

func NewDeliveryReceiptsService(db *gorm.DB, natsinfra *nats.NatsInfra, l logger.Logger, notices repository.Notices, config *config.Config) *DeliveryReceiptsService {
	stream, err := nats.InitResponsesStream(context.Background(), natsinfra.Js)
	if err != nil {
		panic(err)
	}

	c, err := stream.CreateOrUpdateConsumer(context.Background(), jetstream.ConsumerConfig{
		Durable:       "delivery_receipts",
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: natsdomain.SubjResDelivery.String(),
	})
	if err != nil {
		panic("CreateOrUpdateConsumer error" + err.Error())
	}

	return &DeliveryReceiptsService{db: db, natsinfra: natsinfra, c: c, notices: notices, l: l, config: config}
}

func (s *DeliveryReceiptsService) StartWaitReceipts() {

	const delay = time.Second * 10

	_, err := s.c.Consume(func(msg jetstream.Msg) {
		err := s.consumer(msg)
		if err != nil {
			s.l.Debug("Consume error", "error", err.Error(), "msg", string(msg.Data()))
			msg.NakWithDelay(delay)
			return
		}
		fmt.Println(msg.Ack())
	})

	if err != nil {
		s.l.TemplNatsError("Consume error", s.natsinfra.Nc.ConnectedUrl(), err)
		return
	}

}

func (s *DeliveryReceiptsService) consumer(msg jetstream.Msg) error {

	fmt.Println("Received a receipt", string(msg.Data()))

	m, _ := msg.Metadata()
	if m != nil {
		if m.NumDelivered > 3 {
			s.l.Debug("Too many deliveries", "num", m.NumDelivered)
			return nil
		}
	}

	receipt, err := utils.Unmarshal[natsdomain.ResDelivery](msg.Data())
	if err != nil {
		fmt.Println("Unmarshal error", err)
		return err
	}

	if receipt.NoticeId == "" {
		return fmt.Errorf("receipt error: receipt.NoticeId is empty")
	}

	if receipt.IsError {
		return s.handleFailed(receipt)
	}

	return s.handleDelivered(receipt)

}

// handleFailed marks the notice failed. No automatic republish, the
// mailer already exhausted its redeliveries, the admin resend endpoint
// covers the rest.
func (s *DeliveryReceiptsService) handleFailed(receipt *natsdomain.ResDelivery) error {
	errid := logger.GenErrorId()

	err := s.notices.UpdateStatus(s.db, receipt.NoticeId, domain.NOTICE_FAILED)
	if err != nil {
		s.l.TemplNoticeErr("mark failed error: "+err.Error(), errid, receipt.NoticeId, domain.NOTICE_EMAIL, err)
		return err
	}

	s.l.TemplNoticeErr("letter delivery failed: "+receipt.Message, errid, receipt.NoticeId, domain.NOTICE_EMAIL, fmt.Errorf(receipt.Message))
	return nil
}

func (s *DeliveryReceiptsService) handleDelivered(receipt *natsdomain.ResDelivery) error {
	err := s.notices.UpdateStatus(s.db, receipt.NoticeId, domain.NOTICE_DONE)
	if err != nil {
		s.l.TemplNoticeErr("mark done error: "+err.Error(), logger.GenErrorId(), receipt.NoticeId, domain.NOTICE_EMAIL, err)
		return err
	}

	s.l.TemplNoticeInfo("letter delivered via "+receipt.Relay, receipt.NoticeId, domain.NOTICE_EMAIL)
	return nil
}
