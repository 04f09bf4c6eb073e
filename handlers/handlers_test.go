package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/biosecret/todopages/app"
	"github.com/biosecret/todopages/database"
	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/notify"
	"github.com/biosecret/todopages/services"
	"github.com/biosecret/todopages/store"
)

type testServer struct {
	app   *fiber.App
	hub   *notify.Hub
	store *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, database.Options{Driver: "sqlite", URL: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, dialect))

	st := store.New(db, dialect)
	hub := notify.NewHub()
	svc := services.New(st, services.Config{
		Notifier:   notify.NewBroker(st, zerolog.Nop(), hub),
		BcryptCost: bcrypt.MinCost,
	})

	a := app.NewFiber(app.Deps{
		Store:    st,
		Services: svc,
		Hub:      hub,
		Tokens: middleware.Tokens{
			Secret:     []byte("test-secret"),
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		},
		Log: zerolog.Nop(),
	})
	return &testServer{app: a, hub: hub, store: st}
}

type response struct {
	status int
	body   map[string]any
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req, token)
}

func (s *testServer) form(t *testing.T, path, token string, values url.Values) response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{status: resp.StatusCode, body: map[string]any{}}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out.body), string(data))
	}
	return out
}

// login đăng ký rồi đăng nhập, trả về access token
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	res := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": username,
		"password": "password123",
		"email":    username + "@example.com",
	})
	require.Equal(t, fiber.StatusCreated, res.status, res.body)

	res = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	token, _ := res.body["access_token"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, res.body["refresh_token"])
	return token
}

func id(t *testing.T, v any) int64 {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected object, got %T", v)
	n, ok := m["id"].(float64)
	require.True(t, ok)
	return int64(n)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	res := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodGet, "/pages", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	token := s.login(t, "alice")

	res = s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"username": "alice", "password": "password123"})
	assert.Equal(t, fiber.StatusConflict, res.status)

	res = s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"username": "bob", "password": "short"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "password", res.body["field"])

	res = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"username": "alice", "password": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	res = s.do(t, http.MethodGet, "/pages", token, nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Empty(t, res.body["pages"])
}

func TestRefreshToken(t *testing.T) {
	s := newTestServer(t)
	access := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"username": "alice", "password": "password123"})
	require.Equal(t, fiber.StatusOK, res.status)
	refresh := res.body["refresh_token"].(string)

	// refresh token không dùng được như access token
	res = s.do(t, http.MethodGet, "/pages", refresh, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	res = s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": access})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	res = s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": refresh})
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	renewed, _ := res.body["access_token"].(string)
	require.NotEmpty(t, renewed)
	assert.NotEmpty(t, res.body["refresh_token"])

	res = s.do(t, http.MethodGet, "/pages", renewed, nil)
	assert.Equal(t, fiber.StatusOK, res.status)

	user, err := s.store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, s.store.DeleteUser(context.Background(), user.ID))
	res = s.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{"refresh_token": refresh})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
}

func TestGroceriesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "Groceries", "color": "#ff0000"})
	require.Equal(t, fiber.StatusCreated, res.status, res.body)
	pageID := id(t, res.body["page"])

	res = s.form(t, "/pages/create", token, url.Values{"title": {"Groceries"}})
	assert.Equal(t, fiber.StatusConflict, res.status)

	res = s.form(t, fmt.Sprintf("/pages/%d/todos/create", pageID), token, url.Values{
		"title":    {"Buy milk"},
		"priority": {"high"},
	})
	require.Equal(t, fiber.StatusCreated, res.status, res.body)
	todoID := id(t, res.body["todo"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/toggle", todoID), token, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, true, res.body["success"])
	assert.Equal(t, true, res.body["completed"])
	assert.Equal(t, "task completed", res.body["message"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/toggle", todoID), token, nil)
	assert.Equal(t, false, res.body["completed"])

	res = s.do(t, http.MethodGet, fmt.Sprintf("/pages/%d?status=pending", pageID), token, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	todos := res.body["todos"].([]any)
	require.Len(t, todos, 1)
	todo := todos[0].(map[string]any)
	assert.Equal(t, "Buy milk", todo["title"])
	assert.Nil(t, todo["completed_at"])
	assert.Equal(t, "#fd7e14", todo["priority_color"])
	assert.Equal(t, "pending", res.body["filter_status"])
	assert.Equal(t, float64(1), res.body["page_stats"].(map[string]any)["total"])

	res = s.do(t, http.MethodGet, "/search?q=milk", token, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	results := res.body["results"].(map[string]any)
	assert.Len(t, results["todos"], 1)
	assert.Empty(t, results["pages"])

	res = s.do(t, http.MethodGet, "/search?q=", token, nil)
	results = res.body["results"].(map[string]any)
	assert.Empty(t, results["todos"])
	assert.Empty(t, results["pages"])
}

func TestOwnershipOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := s.login(t, "alice")
	bob := s.login(t, "bob")

	res := s.do(t, http.MethodPost, "/pages/create", alice, map[string]any{"title": "Private"})
	require.Equal(t, fiber.StatusCreated, res.status)
	pageID := id(t, res.body["page"])
	res = s.do(t, http.MethodPost, "/todos/quick-add", alice, map[string]any{"page_id": pageID, "title": "Secret"})
	require.Equal(t, fiber.StatusOK, res.status)
	todoID := id(t, res.body["todo"])

	paths := []string{
		fmt.Sprintf("/pages/%d/edit", pageID),
		fmt.Sprintf("/pages/%d/delete", pageID),
		fmt.Sprintf("/pages/%d/todos/create", pageID),
		fmt.Sprintf("/todos/%d/edit", todoID),
		fmt.Sprintf("/todos/%d/toggle", todoID),
		fmt.Sprintf("/todos/%d/delete", todoID),
	}
	for _, p := range paths {
		res = s.do(t, http.MethodPost, p, bob, map[string]any{"title": "hijack"})
		assert.Equal(t, fiber.StatusNotFound, res.status, p)
		assert.Equal(t, "not found", res.body["error"], p)
	}

	for _, p := range []string{fmt.Sprintf("/pages/%d/edit", pageID), fmt.Sprintf("/todos/%d/edit", todoID)} {
		res = s.do(t, http.MethodGet, p, bob, nil)
		assert.Equal(t, fiber.StatusNotFound, res.status, p)
	}

	res = s.do(t, http.MethodGet, fmt.Sprintf("/pages/%d/edit", pageID), alice, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "Private", res.body["page"].(map[string]any)["title"])
	res = s.do(t, http.MethodGet, fmt.Sprintf("/todos/%d/edit", todoID), alice, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "Secret", res.body["todo"].(map[string]any)["title"])

	res = s.do(t, http.MethodGet, fmt.Sprintf("/pages/%d", pageID), bob, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	res = s.do(t, http.MethodGet, "/pages/abc", bob, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestPageEditAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "Work"})
	pageID := id(t, res.body["page"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/pages/%d/edit", pageID), token, map[string]any{"title": "", "color": "#000000"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "title", res.body["field"])

	res = s.form(t, fmt.Sprintf("/pages/%d/edit", pageID), token, url.Values{"title": {"Job"}, "color": {"#123abc"}})
	require.Equal(t, fiber.StatusOK, res.status)
	page := res.body["page"].(map[string]any)
	assert.Equal(t, "Job", page["title"])
	assert.Equal(t, "#123abc", page["color"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/pages/%d/delete", pageID), token, nil)
	assert.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, http.MethodGet, "/pages", token, nil)
	assert.Empty(t, res.body["pages"])
	res = s.do(t, http.MethodGet, fmt.Sprintf("/pages/%d", pageID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	res = s.do(t, http.MethodGet, fmt.Sprintf("/pages/%d/edit", pageID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestTodoEditDueDate(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "Home"})
	pageID := id(t, res.body["page"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/pages/%d/todos/create", pageID), token, map[string]any{
		"title":    "Pay rent",
		"due_date": "2026-06-01T10:30",
	})
	require.Equal(t, fiber.StatusCreated, res.status, res.body)
	todo := res.body["todo"].(map[string]any)
	assert.Equal(t, "2026-06-01T10:30:00Z", todo["due_date"])
	todoID := id(t, todo)

	res = s.form(t, fmt.Sprintf("/todos/%d/edit", todoID), token, url.Values{
		"title":    {"Pay rent"},
		"priority": {"urgent"},
		"due_date": {"2026-06-02"},
		"position": {"3"},
	})
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	todo = res.body["todo"].(map[string]any)
	assert.Equal(t, "2026-06-02T00:00:00Z", todo["due_date"])
	assert.Equal(t, float64(3), todo["position"])
	assert.Equal(t, "urgent", todo["priority"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/edit", todoID), token, map[string]any{
		"title":    "Pay rent",
		"due_date": "next week",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "due_date", res.body["field"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/edit", todoID), token, map[string]any{"title": "Pay rent"})
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Nil(t, res.body["todo"].(map[string]any)["due_date"])

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/delete", todoID), token, nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/toggle", todoID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestQuickAddRejectsInvalidData(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/todos/quick-add", token, map[string]any{"title": "no page"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, false, res.body["success"])
	assert.Equal(t, "invalid data", res.body["error"])

	res = s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "Inbox"})
	require.Equal(t, fiber.StatusCreated, res.status)
	pageID := id(t, res.body["page"])

	for _, title := range []string{"", "   "} {
		res = s.do(t, http.MethodPost, "/todos/quick-add", token, map[string]any{"page_id": pageID, "title": title})
		assert.Equal(t, fiber.StatusBadRequest, res.status)
		assert.Equal(t, false, res.body["success"])
		assert.Equal(t, "invalid data", res.body["error"])
		assert.Equal(t, "title", res.body["field"])
	}

	res = s.do(t, http.MethodPost, "/todos/quick-add", token, map[string]any{"page_id": 999, "title": "x"})
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestProfileOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	profile := res.body["profile"].(map[string]any)
	assert.Equal(t, "light", profile["theme"])
	assert.Equal(t, true, profile["notifications_enabled"])

	// checkbox không có mặt nghĩa là tắt
	res = s.form(t, "/profile", token, url.Values{
		"first_name": {"Alice"},
		"theme":      {"dark"},
		"bio":        {"hello"},
	})
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	profile = res.body["profile"].(map[string]any)
	assert.Equal(t, "dark", profile["theme"])
	assert.Equal(t, false, profile["notifications_enabled"])
	assert.Equal(t, "Alice", res.body["user"].(map[string]any)["first_name"])

	res = s.form(t, "/profile", token, url.Values{"theme": {"dark"}, "notifications_enabled": {"on"}})
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, true, res.body["profile"].(map[string]any)["notifications_enabled"])

	res = s.do(t, http.MethodPost, "/profile", token, map[string]any{"theme": "neon"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "theme", res.body["field"])
}

func TestDashboardOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "One"})
	pageID := id(t, res.body["page"])
	s.do(t, http.MethodPost, "/todos/quick-add", token, map[string]any{"page_id": pageID, "title": "a"})

	res = s.do(t, http.MethodGet, "/", token, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	stats := res.body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["total_pages"])
	assert.Equal(t, float64(1), stats["pending_todos"])
	assert.Len(t, res.body["recent_pages"], 1)
}

func TestEventsRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	res := s.do(t, http.MethodGet, "/events", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, 0, s.hub.Len())
}

func TestEventsStreamTodoCompleted(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	res := s.do(t, http.MethodPost, "/pages/create", token, map[string]any{"title": "Groceries"})
	require.Equal(t, fiber.StatusCreated, res.status)
	res = s.do(t, http.MethodPost, "/todos/quick-add", token, map[string]any{"page_id": id(t, res.body["page"]), "title": "Buy milk"})
	require.Equal(t, fiber.StatusOK, res.status)
	todoID := id(t, res.body["todo"])

	// luồng SSE không kết thúc nên cần server thật thay cho app.Test
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.app.Listener(ln) }()
	t.Cleanup(func() { _ = s.app.ShutdownWithTimeout(time.Second) })

	req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	// header chỉ tới client cùng với chunk đầu tiên nên phải đọc trong goroutine riêng
	frame := make(chan []string, 1)
	go func() {
		defer close(frame)
		resp, err := http.DefaultClient.Do(req)
		if err != nil || resp.StatusCode != fiber.StatusOK ||
			resp.Header.Get("Content-Type") != "text/event-stream" {
			return
		}
		defer resp.Body.Close()

		var lines []string
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				if len(lines) > 0 && lines[0] == "event: todo.completed" {
					frame <- lines
					return
				}
				lines = nil
				continue
			}
			lines = append(lines, line)
		}
	}()
	require.Eventually(t, func() bool { return s.hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	res = s.do(t, http.MethodPost, fmt.Sprintf("/todos/%d/toggle", todoID), token, nil)
	require.Equal(t, fiber.StatusOK, res.status)

	var lines []string
	select {
	case lines = <-frame:
	case <-time.After(5 * time.Second):
		t.Fatal("no todo.completed event received")
	}
	require.Len(t, lines, 3)
	assert.Equal(t, "retry: 15000", lines[1])

	var payload struct {
		Data struct {
			Kind      string `json:"kind"`
			TodoID    int64  `json:"todo_id"`
			Title     string `json:"title"`
			Completed bool   `json:"completed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[2], "data: ")), &payload))
	assert.Equal(t, "todo.completed", payload.Data.Kind)
	assert.Equal(t, todoID, payload.Data.TodoID)
	assert.Equal(t, "Buy milk", payload.Data.Title)
	assert.True(t, payload.Data.Completed)
}
