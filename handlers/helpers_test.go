// helpers_test.go - Shared setup for handler tests

package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"attendance-tracker/config"
	"attendance-tracker/database"
	"attendance-tracker/events"
	"attendance-tracker/logger"
	"attendance-tracker/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// clock is a settable time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recorder keeps every published event
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close() {}

func (r *recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

type testEnv struct {
	router *gin.Engine
	clock  *clock
	events *recorder
	logs   *bytes.Buffer
}

// setupTestEnv creates a fresh SQLite file and a router with every endpoint
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	env := &testEnv{
		clock:  &clock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		events: &recorder{},
		logs:   &bytes.Buffer{},
	}
	h := New(Deps{
		Store:     store.New(db),
		Publisher: env.events,
		Logger:    logger.New(log.New(env.logs, "", 0), "", "test"),
		JWTSecret: "supersecret",
		Clock:     env.clock.Now,
	})

	r := gin.New()
	r.Use(gin.CustomRecovery(h.Recovered))
	h.Register(r.Group("/api"))
	env.router = r
	return env
}

// do sends a request with an optional JSON body (string or value) and returns the recorder
func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

// createUser posts a user and returns its id
func (e *testEnv) createUser(t *testing.T, username string) uint {
	t.Helper()
	w := e.do("POST", "/api/users", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "p",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &body)
	return body.User.ID
}
