package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/kn713606pp/Lne-task-bot/internal/config"
	"github.com/kn713606pp/Lne-task-bot/internal/dispatch"
	"github.com/kn713606pp/Lne-task-bot/internal/line"
	"github.com/kn713606pp/Lne-task-bot/internal/observability"
	"github.com/kn713606pp/Lne-task-bot/internal/records"
)

const maxWebhookBody = 1 << 20

type Server struct {
	cfg        config.Config
	controller *dispatch.Controller
	metrics    *observability.Metrics
	feed       *Feed
	upgrader   websocket.Upgrader
}

func New(cfg config.Config, controller *dispatch.Controller, metrics *observability.Metrics, feed *Feed) *Server {
	return &Server{
		cfg:        cfg,
		controller: controller,
		metrics:    metrics,
		feed:       feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// The feed is an operator surface. Same-origin browsers only,
				// unless explicitly opened up for a fronting proxy.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/callback", s.handleWebhook)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/v1/records/feed", s.handleRecordFeed)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"service":    "line-task-bot",
		"store_mode": records.StoreMode(s.cfg.DatabaseURL),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"store_mode": records.StoreMode(s.cfg.DatabaseURL),
	})
}

type eventOutcome struct {
	WebhookEventID string `json:"webhook_event_id,omitempty"`
	Outcome        string `json:"outcome"`
}

// handleWebhook verifies the delivery signature, then fans the batch out:
// events are processed concurrently, each one's pipeline strictly
// sequential, with no ordering guarantee between them.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "read_failed", "could not read webhook body")
		return
	}

	if s.cfg.LINEChannelSecret != "" {
		if !line.ValidateSignature(s.cfg.LINEChannelSecret, body, r.Header.Get("X-Line-Signature")) {
			respondError(w, http.StatusBadRequest, "bad_signature", "signature verification failed")
			return
		}
	}

	wh, err := line.ParseWebhook(body)
	if err != nil {
		log.Printf("malformed webhook batch: %v", err)
		respondError(w, http.StatusInternalServerError, "bad_batch", "could not parse webhook batch")
		return
	}

	outcomes := make([]eventOutcome, len(wh.Events))
	var wg sync.WaitGroup
	for i, ev := range wh.Events {
		if s.metrics != nil {
			s.metrics.WebhookEvents.WithLabelValues(ev.Type).Inc()
		}
		wg.Add(1)
		go func(i int, ev line.Event) {
			defer wg.Done()
			outcome := s.controller.Handle(r.Context(), ev)
			outcomes[i] = eventOutcome{WebhookEventID: ev.WebhookEventID, Outcome: string(outcome)}
		}(i, ev)
	}
	wg.Wait()

	respondJSON(w, http.StatusOK, outcomes)
}

func (s *Server) handleRecordFeed(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		respondError(w, http.StatusNotImplemented, "unavailable", "record feed not configured")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s.feed.serve(ctx, conn, cancel)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
