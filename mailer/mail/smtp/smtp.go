package smtp

import (
	"fmt"
	"net"
	"strconv"
	"sync/atomic"

	"payout/mailer/mail/config"
	"payout/pkg/rr"

	gomail "gopkg.in/gomail.v2"
)

// Sender pushes letters through a pool of smtp relays. Relays rotate
// round robin, a letter that one relay refuses goes out through the
// next one.
type Sender struct {
	relays *atomic.Pointer[[]string]
	rr     rr.RoundRobin

	from     string
	username string
	password string
}

type Letter struct {
	To        string
	Subject   string
	Body      string
	Reference string
}

func Init(config *config.Config) *Sender {
	list := new(atomic.Pointer[[]string])

	relays := config.Smtp.TomlRelays
	list.Store(&relays)

	return &Sender{
		relays:   list,
		rr:       rr.New(list),
		from:     config.Smtp.From,
		username: config.Smtp.Username,
		password: config.Smtp.Password,
	}
}

// Send hands the letter to the next relay in rotation. Returns the
// relay that accepted it.
func (s *Sender) Send(letter Letter) (string, error) {
	attempts := s.rr.GetProxyCount()
	if attempts == 0 {
		return "", fmt.Errorf("no smtp relays configured")
	}

	var lastErr error
	for range attempts {
		relay, ok := s.rr.Next()
		if !ok {
			return "", fmt.Errorf("no smtp relays configured")
		}

		err := s.deliver(relay, letter)
		if err != nil {
			lastErr = fmt.Errorf("relay %s: %w", relay, err)
			fmt.Println("smtp error: ", lastErr)
			continue
		}

		return relay, nil
	}

	return "", lastErr
}

func (s *Sender) deliver(relay string, letter Letter) error {
	host, port, err := SplitRelay(relay)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(host, port, s.username, s.password)

	return d.DialAndSend(buildMessage(s.from, letter))
}

func buildMessage(from string, letter Letter) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", letter.To)
	m.SetHeader("Subject", letter.Subject)
	if letter.Reference != "" {
		m.SetHeader("X-Payout-Reference", letter.Reference)
	}
	m.SetBody("text/plain", letter.Body)

	return m
}

// SplitRelay parses "host:port" the way the relay list in the config
// writes it.
func SplitRelay(relay string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(relay)
	if err != nil {
		return "", 0, fmt.Errorf("invalid relay %q: %w", relay, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid relay port %q: %w", portStr, err)
	}

	return host, port, nil
}
