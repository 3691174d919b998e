package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetGroupMemberProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/group/g-1/member/u-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token-1" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"displayName":"Chairman Wang","userId":"u-1"}`))
	}))
	defer srv.Close()

	c := NewClient("token-1", srv.URL)
	name, err := c.DisplayName(context.Background(), "g-1", "u-1")
	if err != nil {
		t.Fatalf("DisplayName() error = %v", err)
	}
	if name != "Chairman Wang" {
		t.Fatalf("DisplayName() = %q", name)
	}
}

func TestGetGroupMemberProfileRetriesServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"displayName":"Chairman Wang"}`))
	}))
	defer srv.Close()

	c := NewClient("token-1", srv.URL)
	if _, err := c.DisplayName(context.Background(), "g-1", "u-1"); err != nil {
		t.Fatalf("DisplayName() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestReplySendsTokenAndText(t *testing.T) {
	var got struct {
		ReplyToken string `json:"replyToken"`
		Messages   []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/message/reply" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode reply: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient("token-1", srv.URL)
	if err := c.Reply(context.Background(), "rt-1", "No records yet."); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if got.ReplyToken != "rt-1" || len(got.Messages) != 1 || got.Messages[0].Text != "No records yet." {
		t.Fatalf("unexpected reply payload: %+v", got)
	}
}

func TestReplyFailsOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("token-1", srv.URL)
	if err := c.Reply(context.Background(), "expired", "hi"); err == nil {
		t.Fatalf("Reply() error = nil, want status error")
	}
}

func TestPushSendsStableRetryKeyAcrossAttempts(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Line-Retry-Key"))
		if len(keys) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}))
	defer srv.Close()

	c := NewClient("token-1", srv.URL)
	if err := c.Push(context.Background(), "u-admin", "task bot is online"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("attempts = %d, want 2", len(keys))
	}
	if keys[0] == "" || keys[0] != keys[1] {
		t.Fatalf("retry key must be stable across attempts: %v", keys)
	}
}
