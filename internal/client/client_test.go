package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zhouzirui/z-timer/backend/internal/handler"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	sessionService "github.com/zhouzirui/z-timer/backend/internal/service/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T) *Client {
	t.Helper()
	store := session.NewMemoryStore(nil)
	srv := httptest.NewServer(handler.NewRouter(sessionService.NewService(store), handler.Options{Collection: "sessions"}))
	c := New(srv.URL, nil)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})
	return c
}

func TestClientRoundTrip(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	empty, err := c.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created, err := c.CreateSession(ctx, session.NewCandidate("test session", 2, at))
	require.NoError(t, err)
	assert.Equal(t, "test session", created.Name)
	assert.Equal(t, float64(2), created.Time)
	assert.True(t, at.Equal(created.CreatedAt.Time))

	listed, err := c.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "sessions-"+created.ID, listed[0].ID)
	assert.Equal(t, created.Name, listed[0].Name)
}

func TestClientCreateRejected(t *testing.T) {
	c := newServer(t)

	_, err := c.CreateSession(context.Background(), session.NewCandidate(" ", 2, time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, session.KindBlankName, rejected.Kind)

	_, err = c.CreateSession(context.Background(), session.Candidate{})
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, session.KindMissingField, rejected.Kind)
}

func TestClientUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	c := New(srv.URL+"/", nil)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})

	_, err := c.ListSessions(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))

	_, err = c.CreateSession(context.Background(), session.NewCandidate("a", 1, time.Now()))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}
