package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-timer/backend/internal/client"
	"github.com/zhouzirui/z-timer/backend/internal/handler"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	sessionService "github.com/zhouzirui/z-timer/backend/internal/service/session"
	"github.com/zhouzirui/z-timer/backend/internal/tracker"
)

func newAPI(t *testing.T) string {
	t.Helper()
	store := session.NewMemoryStore(nil)
	srv := httptest.NewServer(handler.NewRouter(sessionService.NewService(store), handler.Options{Collection: "sessions"}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	apiURL = ""
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSaveThenList(t *testing.T) {
	url := newAPI(t)

	out, err := run(t, "--api", url, "save", "--name", "deep work", "--time", "1500", "--created-at", "2026-10-18T08:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "saved ")

	out, err = run(t, "--api", url, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sessions-")
	assert.Contains(t, out, "deep work")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "2026-10-18T08:00:00Z")
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, "--api", newAPI(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved sessions")
}

func TestSaveRejectsBlankNameLocally(t *testing.T) {
	_, err := run(t, "--api", "http://127.0.0.1:1", "save", "--name", " ", "--time", "3")
	require.Error(t, err)
	assert.Equal(t, "Please provide a valid session name.", err.Error())
}

func TestRunTrackSavesOnEnter(t *testing.T) {
	c := client.New(newAPI(t), nil)
	t.Cleanup(c.CloseIdleConnections)
	form := tracker.NewForm(tracker.NewTimer(nil), c)

	var out bytes.Buffer
	err := runTrack(context.Background(), form, "standup", strings.NewReader("\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "saved ")

	records, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "standup", records[0].Name)
}

func TestRunTrackRejectsLongName(t *testing.T) {
	form := tracker.NewForm(tracker.NewTimer(nil), client.New("http://127.0.0.1:1", nil))
	err := runTrack(context.Background(), form, strings.Repeat("n", 301), strings.NewReader("\n"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, session.MessageNameTooLong, err.Error())
}
