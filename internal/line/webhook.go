// Package line is the boundary to the LINE Messaging API: webhook payload
// parsing and signature verification on the way in, profile lookup and
// reply/push delivery on the way out.
package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Event and message types we care about. Everything else is ignored by
// dispatch, not rejected here.
const (
	EventTypeMessage = "message"
	MessageTypeText  = "text"
	SourceTypeGroup  = "group"
	SourceTypeRoom   = "room"
	SourceTypeUser   = "user"
)

// Webhook is one delivery batch posted to the callback endpoint.
type Webhook struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event is a single webhook event.
type Event struct {
	Type            string          `json:"type"`
	WebhookEventID  string          `json:"webhookEventId"`
	Timestamp       int64           `json:"timestamp"`
	ReplyToken      string          `json:"replyToken"`
	Source          Source          `json:"source"`
	Message         Message         `json:"message"`
	DeliveryContext DeliveryContext `json:"deliveryContext"`
}

// Source identifies where the event originated.
type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

// Message is the message payload of a message event.
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// ParseWebhook decodes a webhook delivery body.
func ParseWebhook(body []byte) (Webhook, error) {
	var wh Webhook
	if err := json.Unmarshal(body, &wh); err != nil {
		return Webhook{}, fmt.Errorf("decode webhook body: %w", err)
	}
	return wh, nil
}

// ValidateSignature checks the X-Line-Signature header against the body:
// base64 of the HMAC-SHA256 of the raw body keyed by the channel secret.
func ValidateSignature(channelSecret string, body []byte, signature string) bool {
	if channelSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
