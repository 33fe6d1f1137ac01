package service

import (
	"encoding/json"
	"fmt"
	"time"

	"payout/api/internal/config"
	"payout/api/internal/domain"
	"payout/api/internal/infra/nats"
	"payout/api/internal/infra/postgres"
	"payout/api/internal/logger"
	"payout/api/internal/repository"
	"payout/pkg/nats/natsdomain"
	"payout/pkg/utils"

	"gorm.io/gorm"
)

type NoticesService struct {
	repo    repository.Notices
	webhook WebhookSender

	natsinfra *nats.NatsInfra
	config    *config.Config
	db        *gorm.DB
	l         logger.Logger
}

func NewNoticesService(db *gorm.DB, repo repository.Notices, webhook WebhookSender, natsinfra *nats.NatsInfra, l logger.Logger, config *config.Config) *NoticesService {
	return &NoticesService{repo: repo, webhook: webhook, natsinfra: natsinfra, config: config, db: db, l: l}
}

// checks the notices table and hands new rows to their channel
func (s *NoticesService) StartDispatch() {
	sleepTime := 10 * time.Second
	if s.config.Testing.Enabled && s.config.Testing.SlowDispatch > 0 {
		sleepTime = s.config.Testing.SlowDispatch
	}

	fmt.Println("NOTICE DISPATCH START")

	go func() {
		for {
			notices, err := getNewNotices(s.db, s.repo, 20, time.Second*1)
			if err != nil {
				fmt.Println(err)
				time.Sleep(sleepTime)
				continue
			}

			for _, notice := range notices {
				switch notice.Kind {
				case domain.NOTICE_EMAIL:
					s.handleEmailNotice(notice)
				case domain.NOTICE_WEBHOOK:
					s.handleWebhookNotice(notice)
				default:
					fmt.Println("Invalid notice kind: " + notice.Kind)
					continue
				}
			}

			time.Sleep(sleepTime)
		}
	}()

}

// handleEmailNotice publishes the letter for the mailer and marks the row
// sent. The delivery receipt moves it to done or failed later. The notice
// id is the jetstream message id, a republished row dedupes on the broker.
func (s *NoticesService) handleEmailNotice(notice domain.Notices) {
	payload, err := utils.Unmarshal[domain.PayloadEmail]([]byte(notice.Payload))
	if err != nil {
		s.l.TemplNoticeErr("unmarshal email payload error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
		s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_FAILED)
		return
	}

	letter, err := json.Marshal(natsdomain.ReqEmailNotice{
		NoticeId:  notice.NoticeID,
		To:        payload.To,
		Subject:   payload.Subject,
		Body:      payload.Body,
		Reference: payload.Reference,
	})
	if err != nil {
		s.l.TemplNoticeErr("marshal letter error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
		return
	}

	err = s.natsinfra.JsPublishMsgId(natsdomain.SubjJsEmail.String(), letter, natsdomain.NewMsgId(notice.NoticeID, natsdomain.MsgActionEmail))
	if err != nil {
		// stays new, the next cycle republishes
		s.l.TemplNoticeErr("publish letter error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
		return
	}

	if err := s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_SENT); err != nil {
		s.l.TemplNoticeErr("mark sent error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
	}
}

func (s *NoticesService) handleWebhookNotice(notice domain.Notices) {
	payload, err := utils.Unmarshal[domain.PayloadWebhook]([]byte(notice.Payload))
	if err != nil {
		s.l.TemplNoticeErr("unmarshal webhook payload error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
		s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_FAILED)
		return
	}

	go func() {
		if err := s.webhook.Send(s.config.WebhookUrl, *payload); err != nil {
			s.l.TemplNoticeErr("send webhook error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
			s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_FAILED)
			return
		}
		s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_DONE)
	}()
}

// Resend pushes a failed email notice straight to the mailer, skipping
// jetstream. Used by the admin endpoint after delivery gave up.
func (s *NoticesService) Resend(noticeId string) (string, error) {
	notice, err := s.repo.Find(s.db, noticeId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return "", domain.ErrNoticeNotFound
		}
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if notice.Kind != domain.NOTICE_EMAIL {
		return "", fmt.Errorf("notice %s is not an email notice", noticeId)
	}

	relay, err := s.natsinfra.ReqSendNow(notice)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateStatus(s.db, notice.NoticeID, domain.NOTICE_DONE); err != nil {
		s.l.TemplNoticeErr("mark done error", logger.GenErrorId(), notice.NoticeID, notice.Kind, err)
	}

	return relay, nil
}

func selectNoticesFromDb(tx *gorm.DB, repo repository.Notices, count int) ([]domain.Notices, error) {
	return repo.New(tx, count)
}

const errNoValidNotices = "no valid notices"

// getNewNotices skips rows younger than timeDiff, a row enqueued a moment
// ago may belong to a request that is still writing its siblings.
func getNewNotices(tx *gorm.DB, repo repository.Notices, count int, timeDiff time.Duration) ([]domain.Notices, error) {
	var validNotices []domain.Notices

	notices, err := selectNoticesFromDb(tx, repo, count)
	if err != nil {
		return nil, err
	}

	for _, x := range notices {
		if time.Since(x.CreatedAt) > timeDiff {
			validNotices = append(validNotices, x)
		}
	}

	if len(validNotices) == 0 {
		return nil, fmt.Errorf(errNoValidNotices)
	}

	return validNotices, nil
}
