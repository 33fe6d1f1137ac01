package natsdomain

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// nats struct
type Ns struct {
	Nc *nats.Conn
	Js jetstream.JetStream
}

type Nc struct {
	*nats.Conn
}

type Error struct {
	IsError   bool
	Message   string
	Timestamp time.Time
}

// api -> mailer, one letter per message. NoticeId doubles as the
// jetstream msg id so a redispatched outbox row cannot produce a
// second letter.
type ReqEmailNotice struct {
	NoticeId  string
	To        string
	Subject   string
	Body      string
	Reference string
}

// mailer -> api on the response subject
type ResDelivery struct {
	Error
	NoticeId string
	Relay    string // smtp relay that accepted the letter
}
