package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kn713606pp/Lne-task-bot/internal/reliability"
)

const DefaultAPIBaseURL = "https://api.line.me"

// Client calls the LINE Messaging API.
type Client struct {
	baseURL      string
	channelToken string
	http         *http.Client
}

func NewClient(channelToken, baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		channelToken: strings.TrimSpace(channelToken),
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Profile is a group member profile.
type Profile struct {
	DisplayName string `json:"displayName"`
	UserID      string `json:"userId"`
	PictureURL  string `json:"pictureUrl"`
}

// GetGroupMemberProfile resolves a group member's profile.
func (c *Client) GetGroupMemberProfile(ctx context.Context, groupID, userID string) (Profile, error) {
	url := fmt.Sprintf("%s/v2/bot/group/%s/member/%s", c.baseURL, groupID, userID)

	var profile Profile
	err := reliability.Retry(ctx, 2, 300*time.Millisecond, time.Second, func() (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, fmt.Errorf("create request: %w", err)
		}
		c.authorize(req)

		res, err := c.http.Do(req)
		if err != nil {
			return true, fmt.Errorf("get member profile: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
			return reliability.IsRetryableHTTPStatus(res.StatusCode),
				fmt.Errorf("line profile status %d: %s", res.StatusCode, string(body))
		}
		if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
			return false, fmt.Errorf("decode profile: %w", err)
		}
		return false, nil
	})
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// DisplayName is the narrow lookup dispatch depends on.
func (c *Client) DisplayName(ctx context.Context, groupID, userID string) (string, error) {
	profile, err := c.GetGroupMemberProfile(ctx, groupID, userID)
	if err != nil {
		return "", err
	}
	return profile.DisplayName, nil
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Reply sends a text reply for the given reply token. Reply tokens are
// single-use and short-lived, so there is no point retrying a failure.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	_, err = c.post(ctx, "/v2/bot/message/reply", payload, "")
	return err
}

// Push sends a text message to a user or group without a reply token. The
// uuid retry key makes retried deliveries idempotent on LINE's side.
func (c *Client) Push(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal push: %w", err)
	}

	retryKey := uuid.NewString()
	return reliability.Retry(ctx, 2, 300*time.Millisecond, time.Second, func() (bool, error) {
		return c.post(ctx, "/v2/bot/message/push", payload, retryKey)
	})
}

func (c *Client) post(ctx context.Context, path string, payload []byte, retryKey string) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if retryKey != "" {
		req.Header.Set("X-Line-Retry-Key", retryKey)
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return true, fmt.Errorf("send %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return reliability.IsRetryableHTTPStatus(res.StatusCode),
			fmt.Errorf("line %s status %d: %s", path, res.StatusCode, string(body))
	}
	return false, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.channelToken)
}
