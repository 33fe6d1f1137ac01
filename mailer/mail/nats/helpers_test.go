package nats

import (
	"fmt"
	"testing"

	"payout/pkg/nats/natsdomain"
)

func TestDeliveryFormat(t *testing.T) {

	receipt := DeliveryFormat("notice-1", "smtp-1.example.net:587", nil)
	if receipt.IsError {
		t.Fatal("IsError = true for a delivered letter")
	}
	if receipt.Relay != "smtp-1.example.net:587" || receipt.NoticeId != "notice-1" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	receipt = DeliveryFormat("notice-2", "", fmt.Errorf("relay refused"))
	if !receipt.IsError {
		t.Fatal("IsError = false for a refused letter")
	}
	if receipt.Message != "relay refused" {
		t.Fatalf("Message = %q, want %q", receipt.Message, "relay refused")
	}
	if receipt.Timestamp.IsZero() {
		t.Fatal("error receipt without timestamp")
	}

}

func TestUnmarshalEmailNotice(t *testing.T) {

	noticeId := "2f1e8a6c"
	to := "user@example.net"
	reference := "WD-1722520000000-0042"

	data := fmt.Sprintf(`{"NoticeId": "%s", "To": "%s", "Subject": "Withdrawal completed", "Body": "Funds sent.", "Reference": "%s"}`, noticeId, to, reference)

	letterMsg, err := Unmarshal[natsdomain.ReqEmailNotice]([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if letterMsg.NoticeId != noticeId || letterMsg.To != to || letterMsg.Reference != reference {
		t.Fatalf("unexpected letter: %+v", letterMsg)
	}

}
