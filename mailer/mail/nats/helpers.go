package nats

import (
	"encoding/json"
	"time"

	"payout/pkg/nats/natsdomain"
)

func Unmarshal[T any](data []byte) (*T, error) {
	var unm T
	err := json.Unmarshal(data, &unm)
	if err != nil {
		return nil, err
	}
	return &unm, nil
}

// wraps a send result into the receipt the api consumes
func DeliveryFormat(noticeId string, relay string, err error) natsdomain.ResDelivery {
	if err != nil {
		return natsdomain.ResDelivery{
			Error: natsdomain.Error{
				IsError:   true,
				Message:   err.Error(),
				Timestamp: time.Now(),
			},
			NoticeId: noticeId,
		}
	}

	return natsdomain.ResDelivery{
		Error: natsdomain.Error{
			IsError: false,
		},
		NoticeId: noticeId,
		Relay:    relay,
	}
}
