package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/basedfin/quotecast/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory ports.QuoteStore for tests.
type memStore struct {
	mu         sync.Mutex
	list       domain.QuoteList
	hasList    bool
	secret     string
	hasSecret  bool
	saveErr   error
	saveCalls int
	loadCalls int
}

func (s *memStore) Load(_ context.Context) (domain.QuoteList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadCalls++
	if !s.hasList {
		return nil, false
	}

	return s.list.Clone(), true
}

func (s *memStore) Save(_ context.Context, list domain.QuoteList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}

	s.list = list.Clone()
	s.hasList = true

	return nil
}

func (s *memStore) LoadSecret(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSecret {
		return domain.DefaultAdminSecret
	}

	return s.secret
}

func (s *memStore) SaveSecret(_ context.Context, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	s.secret = secret
	s.hasSecret = true

	return nil
}

// fakeSource is a scriptable ports.QuoteSource.
type fakeSource struct {
	list    domain.QuoteList
	ok      bool
	calls   int
	onFetch func()
}

func (f *fakeSource) Fetch(_ context.Context) (domain.QuoteList, bool) {
	f.calls++
	if f.onFetch != nil {
		f.onFetch()
	}

	if !f.ok {
		return nil, false
	}

	return f.list.Clone(), true
}

// fakeChannel is a scriptable ports.CastChannel recording invocations.
type fakeChannel struct {
	name    string
	handled bool
	notice  string
	calls   int
	lastTxt string
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) TryDispatch(_ context.Context, text string) (bool, string) {
	c.calls++
	c.lastTxt = text

	return c.handled, c.notice
}

var errDiskFull = errors.New("disk full")
