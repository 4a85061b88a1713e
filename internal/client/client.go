package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zhouzirui/z-timer/backend/internal/model/session"
)

const jsonContentType = "application/json"

// ErrRejected is returned when the server refuses a create with 400.
var ErrRejected = errors.New("session rejected by server")

// RejectedError carries the validation kind the server reported, if any.
type RejectedError struct {
	Kind session.Kind
}

func (e *RejectedError) Error() string {
	if e.Kind == "" {
		return ErrRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRejected.Error(), e.Kind)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

// Client talks to the sessions API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:8080).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListSessions fetches every saved session.
func (c *Client) ListSessions(ctx context.Context) ([]session.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Accept", jsonContentType)

	body, res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list sessions: unexpected status %d: %s", res.StatusCode, body)
	}

	records := make([]session.Record, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return records, nil
}

// CreateSession submits a candidate and returns the stored record.
func (c *Client) CreateSession(ctx context.Context, candidate session.Candidate) (session.Record, error) {
	payload, err := json.Marshal(candidate)
	if err != nil {
		return session.Record{}, fmt.Errorf("encode session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sessions", bytes.NewReader(payload))
	if err != nil {
		return session.Record{}, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", jsonContentType)
	req.Header.Set("Accept", jsonContentType)

	body, res, err := c.do(req)
	if err != nil {
		return session.Record{}, err
	}

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest:
		return session.Record{}, &RejectedError{Kind: session.Kind(res.Header.Get("X-Validation-Error"))}
	default:
		return session.Record{}, fmt.Errorf("create session: unexpected status %d: %s", res.StatusCode, body)
	}

	var envelope struct {
		Timer *session.Record `json:"timer"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return session.Record{}, fmt.Errorf("decode created session: %w", err)
	}
	if envelope.Timer == nil {
		return session.Record{}, fmt.Errorf("create session: response has no timer")
	}
	return *envelope.Timer, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// do sends req and returns the fully read body; the response body is already closed.
func (c *Client) do(req *http.Request) ([]byte, *http.Response, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("send %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return body, res, nil
}
