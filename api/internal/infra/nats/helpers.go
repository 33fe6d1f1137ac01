package nats

import (
	"encoding/json"
	"fmt"

	"payout/api/internal/domain"
	"payout/pkg/nats/natsdomain"
	"payout/pkg/utils"
)

// checks if there is an error in the response. if there is, it returns true and the error message
func HelpersIsError(data []byte) (bool, string) {
	if len(data) < 6 {
		return false, ""
	}

	if string(data[0:6]) == "error:" {
		return true, string(data[6:])

	}
	return false, ""
}

// a synchronous send replies with the relay that took the letter.
// example:
// ok: smtp-1.example.net:587
func HelpersDeliveryGetRelay(data []byte) (string, error) {
	if len(data) < 6 {
		return "", nil
	}

	if string(data[0:3]) != "ok:" {
		return "", fmt.Errorf("data[0:3] is not 'ok:': " + string(data))
	}

	return string(data[4:]), nil
}

// ReqSendNow pushes one email notice through the mailer synchronously,
// skipping the jetstream queue. Used by the manual resend endpoint for
// notices that already exhausted their redeliveries.
func (n *NatsInfra) ReqSendNow(notice *domain.Notices) (relay string, err error) {
	payload, err := utils.Unmarshal[domain.PayloadEmail](([]byte)(notice.Payload))
	if err != nil {
		return "", fmt.Errorf("unmarshal error: %w", err)
	}

	data, err := json.Marshal(natsdomain.ReqEmailNotice{
		NoticeId:  notice.NoticeID,
		To:        payload.To,
		Subject:   payload.Subject,
		Body:      payload.Body,
		Reference: payload.Reference,
	})
	if err != nil {
		return "", err
	}

	resp, err := n.Ns.ReqAndRecv(natsdomain.SubjSendNow, data)
	if err != nil {
		return "", fmt.Errorf("reqAndRecv error: %w", err)
	}

	iserr, errmsg := HelpersIsError(resp)
	if iserr {
		return "", fmt.Errorf(errmsg)
	}

	return HelpersDeliveryGetRelay(resp)
}
