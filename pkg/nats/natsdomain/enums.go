package natsdomain

type ActionType string

const (
	// mailer -> api
	MsgActionError ActionType = "error"
	// mailer -> api
	MsgActionDelivery ActionType = "delivery"
	// api -> mailer
	MsgActionEmail ActionType = "email"

	// api -> mailer, manual redispatch of a failed notice
	MsgActionEmailRetry ActionType = "email_retry"
)

// subjects for nats

// .js. - jetstream
var SubjectsJetStream = [...]string{"notices.js.email"}

// .core. - nats core
var Subjects = [...]string{"notices.core.ping", "notices.core.send_now"}

var ResponseSubjects = [...]string{"response.delivery"}

type SubjType uint8
type SubjJsType uint8
type SubjResType uint8

// nats core subjects
const (
	// notices.core.ping
	SubjPing SubjType = iota
	SubjSendNow
)

// nats jetstream subjects
const (
	SubjJsEmail SubjJsType = iota
)

// nats response subjects
const (
	SubjResDelivery SubjResType = iota
)

func (s SubjType) String() string {
	return Subjects[s]
}

func (s SubjJsType) String() string {
	return SubjectsJetStream[s]
}

func (s SubjResType) String() string {
	return ResponseSubjects[s]
}
