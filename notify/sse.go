package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/biosecret/todopages/models"
)

const (
	sessionBuffer = 16
	retryMillis   = 15000
)

// Session là một kết nối SSE của một người dùng
type Session struct {
	userID int64
	events chan models.Event
}

func (s *Session) Events() <-chan models.Event {
	return s.events
}

// Hub giữ các session SSE đang mở
type Hub struct {
	mu       sync.Mutex
	sessions []*Session
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(userID int64) *Session {
	s := &Session{userID: userID, events: make(chan models.Event, sessionBuffer)}
	h.mu.Lock()
	h.sessions = append(h.sessions, s)
	h.mu.Unlock()
	return s
}

// Unsubscribe gỡ session; gọi nhiều lần không sao
func (h *Hub) Unsubscribe(s *Session) {
	h.mu.Lock()
	idx := slices.Index(h.sessions, s)
	if idx != -1 {
		h.sessions[idx] = nil
		h.sessions = slices.Delete(h.sessions, idx, idx+1)
	}
	h.mu.Unlock()
}

// Len trả về số session đang mở
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func Filter[T any](filter func(n T) bool) func(T []T) []T {
	return func(list []T) []T {
		r := make([]T, 0, len(list))
		for _, n := range list {
			if filter(n) {
				r = append(r, n)
			}
		}
		return r
	}
}

// Publish gửi sự kiện tới các session của chủ sở hữu. Session đầy bị bỏ qua sự kiện này.
func (h *Hub) Publish(_ context.Context, ev models.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	owned := Filter(func(s *Session) bool { return s.userID == ev.UserID })(h.sessions)
	for _, s := range owned {
		select {
		case s.events <- ev:
		default:
		}
	}
	return nil
}

// FormatSSEMessage định dạng sự kiện theo chuẩn text/event-stream
func FormatSSEMessage(eventType string, data any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	m := map[string]any{
		"data": data,
	}

	if err := enc.Encode(m); err != nil {
		return "", err
	}
	sb := strings.Builder{}

	sb.WriteString(fmt.Sprintf("event: %s\n", eventType))
	sb.WriteString(fmt.Sprintf("retry: %d\n", retryMillis))
	sb.WriteString(fmt.Sprintf("data: %s\n\n", strings.TrimSuffix(buf.String(), "\n")))

	return sb.String(), nil
}
