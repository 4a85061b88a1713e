package main

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-timer/backend/internal/config"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	"github.com/zhouzirui/z-timer/backend/internal/storage"
)

func TestRunServerStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancel")
	}
}

func TestOpenStoreSelectsBackend(t *testing.T) {
	mem, closeMem, err := openStore(config.SessionsConfig{})
	require.NoError(t, err)
	defer closeMem()
	assert.IsType(t, &session.MemoryStore{}, mem)

	path := filepath.Join(t.TempDir(), "sessions.db")
	disk, closeDisk, err := openStore(config.SessionsConfig{StorePath: path})
	require.NoError(t, err)
	defer closeDisk()
	assert.IsType(t, &storage.SQLiteStore{}, disk)
}
