// Package rest inserts records through a PostgREST style HTTP endpoint:
// POST {base}/{table} with the row as a JSON object.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-quoteform/pkg/store"
)

const maxErrorBody = 512

// Option configures the store.
type Option func(*Store)

// WithHTTPClient overrides the HTTP client. The default client sets no
// timeout, so an insert runs until the endpoint answers; pass a client with
// a Timeout to bound it.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.client = client
		}
	}
}

// WithAPIKey sends key as the apikey header and as a bearer token.
func WithAPIKey(key string) Option {
	return func(s *Store) {
		s.apiKey = key
	}
}

// Store posts one row per record.
type Store struct {
	base   *url.URL
	client *http.Client
	apiKey string
}

// New returns a store posting below baseURL.
func New(baseURL string, opts ...Option) (*Store, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("rest: invalid base url %q", baseURL)
	}
	s := &Store{
		base:   base,
		client: &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Insert implements store.RecordStore.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	if record.Table == "" {
		return store.ErrEmptyTable
	}

	payload, err := sonic.Marshal(record.Row())
	if err != nil {
		return fmt.Errorf("rest: encode record %s: %w", record.ID, err)
	}

	endpoint := s.base.JoinPath(record.Table).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("rest: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("rest: post %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s", store.ErrDuplicateRecord, record.ID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("rest: post %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
