package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/basedfin/quotecast/internal/app"
	"github.com/basedfin/quotecast/internal/domain"
	"github.com/basedfin/quotecast/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory ports.QuoteStore for handler tests.
type memStore struct {
	mu     sync.Mutex
	quotes domain.QuoteList
	secret string
}

func (s *memStore) Load(context.Context) (domain.QuoteList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.quotes) == 0 {
		return nil, false
	}

	return s.quotes.Clone(), true
}

func (s *memStore) Save(_ context.Context, list domain.QuoteList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = list.Clone()

	return nil
}

func (s *memStore) LoadSecret(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.secret == "" {
		return domain.DefaultAdminSecret
	}

	return s.secret
}

func (s *memStore) SaveSecret(_ context.Context, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secret = secret

	return nil
}

// stubChannel is a CastChannel with canned behavior.
type stubChannel struct {
	name    string
	handled bool
	notice  string
	casts   []string
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) TryDispatch(_ context.Context, text string) (bool, string) {
	c.casts = append(c.casts, text)
	return c.handled, c.notice
}

// fixture wires a full handler stack over in-memory dependencies.
type fixture struct {
	router  *gin.Engine
	store   *memStore
	library *app.Library
	channel *stubChannel
}

func newFixture(t *testing.T, seed domain.QuoteList) *fixture {
	t.Helper()

	store := &memStore{}
	logger := discardLogger()

	library := app.NewLibrary(app.LibraryConfig{Store: store, Logger: logger})
	library.Seed(seed)

	channel := &stubChannel{name: "stub", handled: true, notice: "sent"}
	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Channels: []ports.CastChannel{channel},
		Logger:   logger,
	})

	picker := app.NewPickerWithSource(func(int) int { return 0 })

	sessions := app.NewSessionManager(app.AdminSessionConfig{
		Library: library,
		Store:   store,
		Logger:  logger,
	})

	router := gin.New()
	api := router.Group("/api/v1")

	NewQuoteHandler(library, picker, dispatcher).RegisterRoutes(api)
	NewAdminHandler(sessions, library).RegisterRoutes(api)

	return &fixture{
		router:  router,
		store:   store,
		library: library,
		channel: channel,
	}
}

// do performs a request against the fixture router.
func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

// unlock opens an admin session and returns auth headers for it.
func (f *fixture) unlock(t *testing.T, password string) map[string]string {
	t.Helper()

	rec := f.do(http.MethodPost, "/api/v1/admin/session", `{"password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	return map[string]string{"Authorization": "Bearer " + resp.Token}
}
