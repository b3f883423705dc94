// Package client is the API-facing half of the admin console and the public
// renderer: the portfolio data store, the health gate, the auth token
// provider and the skills settings client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go-portfolio-console/internal/domain"
)

// ErrAuthRequired is returned before any request is made when a mutating
// operation is attempted without a token.
var ErrAuthRequired = errors.New("authentication required, please log in again")

// SectionStatus is one section's independent in-flight and error state, so
// one section's save never blocks or taints another's.
type SectionStatus struct {
	Loading bool
	Err     string
}

// Store owns the in-memory copy of the portfolio document. All consumers read
// through accessors and write through UpdateSection/UpdateAll; the raw
// document is never handed out for external mutation.
type Store struct {
	baseURL string
	httpc   *http.Client

	mu       sync.RWMutex
	doc      domain.PortfolioDocument
	loading  bool
	err      string
	sections map[string]SectionStatus
}

type StoreOption func(*Store)

func WithHTTPClient(c *http.Client) StoreOption {
	return func(s *Store) { s.httpc = c }
}

func NewStore(baseURL string, opts ...StoreOption) *Store {
	s := &Store{
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpc:    &http.Client{Timeout: 15 * time.Second},
		doc:      domain.PortfolioDocument{},
		sections: map[string]SectionStatus{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns a copy of the currently held document.
func (s *Store) Document() domain.PortfolioDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Section returns a copy of one section's payload.
func (s *Store) Section(name string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.doc[name]
	if !ok {
		return nil, false
	}
	cp := make(json.RawMessage, len(payload))
	copy(cp, payload)
	return cp, true
}

// Status reports a section's loading flag and last error.
func (s *Store) Status(name string) SectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections[name]
}

// Loading reports whether a whole-document operation is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last whole-document error message.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FetchAll loads the full document. On failure the previously held document
// is kept as-is and the error is exposed; no partial result is stored.
func (s *Store) FetchAll(ctx context.Context) (domain.PortfolioDocument, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var doc domain.PortfolioDocument
	if err := s.get(ctx, "/api/portfolio", &doc); err != nil {
		s.setErr(err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.doc = doc.Clone()
	s.err = ""
	s.mu.Unlock()
	return doc, nil
}

// FetchSection loads one section and merges it into the held document.
// Failure leaves the previously held value untouched and records a
// section-scoped error.
func (s *Store) FetchSection(ctx context.Context, name string) (json.RawMessage, error) {
	s.beginSection(name)
	defer s.endSection(name)

	var payload json.RawMessage
	if err := s.get(ctx, "/api/portfolio/"+name, &payload); err != nil {
		s.setSectionErr(name, err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.doc[name] = append(json.RawMessage(nil), payload...)
	s.mu.Unlock()
	s.setSectionErr(name, "")
	return payload, nil
}

// UpdateSection sends the full replacement payload for one section. The local
// copy is replaced only after the server confirms; a failure keeps the
// confirmed data so the caller's draft can be corrected and resubmitted.
func (s *Store) UpdateSection(ctx context.Context, name string, payload json.RawMessage, token string) error {
	if token == "" {
		s.setSectionErr(name, ErrAuthRequired.Error())
		return ErrAuthRequired
	}

	s.beginSection(name)
	defer s.endSection(name)

	if err := s.put(ctx, "/api/portfolio/"+name, payload, token); err != nil {
		s.setSectionErr(name, err.Error())
		return err
	}

	s.mu.Lock()
	s.doc[name] = append(json.RawMessage(nil), payload...)
	s.mu.Unlock()
	s.setSectionErr(name, "")
	return nil
}

// UpdateAll replaces the whole document. Used rarely; same contract as
// UpdateSection but with the global flags.
func (s *Store) UpdateAll(ctx context.Context, doc domain.PortfolioDocument, token string) error {
	if token == "" {
		s.setErr(ErrAuthRequired.Error())
		return ErrAuthRequired
	}

	s.setLoading(true)
	defer s.setLoading(false)

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.put(ctx, "/api/portfolio", body, token); err != nil {
		s.setErr(err.Error())
		return err
	}

	s.mu.Lock()
	s.doc = doc.Clone()
	s.err = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, env, "failed to fetch "+path)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

func (s *Store) put(ctx context.Context, path string, body json.RawMessage, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return responseError(resp.StatusCode, env, "failed to update "+path)
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Store) beginSection(name string) {
	s.mu.Lock()
	st := s.sections[name]
	st.Loading = true
	s.sections[name] = st
	s.mu.Unlock()
}

func (s *Store) endSection(name string) {
	s.mu.Lock()
	st := s.sections[name]
	st.Loading = false
	s.sections[name] = st
	s.mu.Unlock()
}

func (s *Store) setSectionErr(name, msg string) {
	s.mu.Lock()
	st := s.sections[name]
	st.Err = msg
	s.sections[name] = st
	s.mu.Unlock()
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

func decodeEnvelope(r io.Reader) (envelope, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}

// responseError converts a non-2xx response into an error. Validation
// failures with a structured details payload become *domain.ValidationError
// so the messages can be shown next to the offending form.
func responseError(status int, env envelope, fallback string) error {
	if details := parseDetails(env.Details); len(details) > 0 {
		return &domain.ValidationError{Messages: details}
	}
	if env.Message != "" {
		return fmt.Errorf("%s (status %d)", env.Message, status)
	}
	return fmt.Errorf("%s (status %d)", fallback, status)
}

// parseDetails accepts either an array of messages or a field-to-message
// mapping, per the integration contract.
func parseDetails(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err == nil {
		fields := make([]string, 0, len(byField))
		for field := range byField {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		out := make([]string, 0, len(byField))
		for _, field := range fields {
			out = append(out, byField[field])
		}
		return out
	}
	return nil
}
