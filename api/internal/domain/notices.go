package domain

import "time"

const (
	NOTICE_EMAIL   = "email"   // delivered by the mailer worker over jetstream
	NOTICE_WEBHOOK = "webhook" // delivered by the webhook sender to the ops channel
)

// notice lifecycle: new -> sent (handed to the queue, receipt pending)
// -> done | failed. Webhook notices go new -> done/failed directly.
const (
	NOTICE_NEW    = "new"
	NOTICE_SENT   = "sent"
	NOTICE_DONE   = "done"
	NOTICE_FAILED = "failed"
)

type Notices struct {
	ID         uint   `gorm:"primaryKey"`
	NoticeID   string `gorm:"size:36;unique;not null"`
	RelationID uint   `gorm:"not null"` // withdrawals row id
	Kind       string `gorm:"type:varchar(255)"`
	Payload    string
	Status     string
	CreatedAt  time.Time
}

// notice payloads
type PayloadEmail struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Reference string `json:"reference"`
}

type PayloadWebhook struct {
	Event     string `json:"event"`
	Reference string `json:"reference"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

// webhook event names for the ops channel
const (
	WEBHOOK_EVENT_REQUESTED = "withdrawal.requested"
	WEBHOOK_EVENT_COMPLETED = "withdrawal.completed"
	WEBHOOK_EVENT_REJECTED  = "withdrawal.rejected"
	WEBHOOK_EVENT_STUCK     = "withdrawal.stuck"
)
