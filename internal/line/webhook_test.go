package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestParseWebhook(t *testing.T) {
	body := []byte(`{
		"destination": "xxx",
		"events": [{
			"type": "message",
			"webhookEventId": "ev-1",
			"timestamp": 1756500000000,
			"replyToken": "rt-1",
			"source": {"type": "group", "groupId": "g-1", "userId": "u-1"},
			"message": {"id": "m-1", "type": "text", "text": "task list"}
		}]
	}`)

	wh, err := ParseWebhook(body)
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if len(wh.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(wh.Events))
	}
	ev := wh.Events[0]
	if ev.Type != EventTypeMessage || ev.Source.Type != SourceTypeGroup {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Message.Text != "task list" || ev.ReplyToken != "rt-1" {
		t.Fatalf("unexpected message: %+v", ev.Message)
	}
}

func TestParseWebhookRejectsGarbage(t *testing.T) {
	if _, err := ParseWebhook([]byte("not json")); err == nil {
		t.Fatalf("ParseWebhook() error = nil, want decode error")
	}
}

func TestValidateSignature(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[]}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !ValidateSignature(secret, body, sig) {
		t.Fatalf("valid signature rejected")
	}
	if ValidateSignature(secret, body, "bogus") {
		t.Fatalf("bogus signature accepted")
	}
	if ValidateSignature("other-secret", body, sig) {
		t.Fatalf("signature from wrong secret accepted")
	}
	if ValidateSignature(secret, body, "") {
		t.Fatalf("empty signature accepted")
	}
}
