// Package store implements the question store port against a Supabase-style
// REST table endpoint.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"questgenius/internal/config"
	"questgenius/internal/domain"
	"questgenius/internal/logger"

	"go.uber.org/zap"
)

// SupabaseStore talks to a PostgREST table of previously generated questions.
// Rows are matched by exact question text, optionally filtered by user id.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// New creates a SupabaseStore from configuration.
func New(cfg config.StoreConfig) (*SupabaseStore, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("store base URL cannot be empty")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("store API key cannot be empty")
	}
	table := cfg.Table
	if table == "" {
		table = "questions"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseStore{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		table:   table,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// questionRow is the wire shape of one stored question.
type questionRow struct {
	ID          string    `json:"id"`
	Exam        string    `json:"exam"`
	Subject     string    `json:"subject"`
	Difficulty  string    `json:"difficulty"`
	Question    string    `json:"question"`
	Options     []string  `json:"options"`
	Answer      int       `json:"answer"`
	Explanation string    `json:"explanation"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Exists reports whether a question with exactly this text was stored before.
// A missing table is remediated once; if remediation fails the result is
// "not found" rather than an error, so generation is never blocked.
func (s *SupabaseStore) Exists(ctx context.Context, questionText string, userID string) (bool, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("question", "eq."+questionText)
	if userID != "" {
		query.Set("user_id", "eq."+userID)
	}
	query.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, s.table, query.Encode())

	status, body, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, domain.NewPersistenceError("question store lookup failed", err)
	}

	if status == http.StatusNotFound {
		if err := s.createTable(ctx); err != nil {
			logger.Get().Warn("Question table missing and remediation failed, treating as no duplicate",
				zap.Error(err))
			return false, nil
		}
		status, body, err = s.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, domain.NewPersistenceError("question store lookup failed after table creation", err)
		}
	}

	if status < 200 || status >= 300 {
		return false, domain.NewPersistenceError(
			fmt.Sprintf("question store lookup returned status %d", status), nil)
	}

	var rows []questionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return false, domain.NewPersistenceError("question store returned an unreadable reply", err)
	}
	return len(rows) > 0, nil
}

// Insert persists one accepted question. A missing table is remediated once
// before the write is retried.
func (s *SupabaseStore) Insert(ctx context.Context, record *domain.QuestionRecord) error {
	row := questionRow{
		ID:          record.ID,
		Exam:        record.ExamID,
		Subject:     record.Subject,
		Difficulty:  record.Difficulty,
		Question:    record.Question,
		Options:     record.Options,
		Answer:      record.Answer,
		Explanation: record.Explanation,
		UserID:      record.UserID,
		CreatedAt:   record.CreatedAt,
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return domain.NewPersistenceError("failed to encode question record", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)

	status, _, err := s.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return domain.NewPersistenceError("question store write failed", err)
	}

	if status == http.StatusNotFound {
		if err := s.createTable(ctx); err != nil {
			return domain.NewPersistenceError("question table missing and remediation failed", err)
		}
		status, _, err = s.do(ctx, http.MethodPost, endpoint, payload)
		if err != nil {
			return domain.NewPersistenceError("question store write failed after table creation", err)
		}
	}

	if status < 200 || status >= 300 {
		return domain.NewPersistenceError(
			fmt.Sprintf("question store write returned status %d", status), nil)
	}
	return nil
}

// createTable issues the remote procedure call that provisions the question
// table on a fresh project.
func (s *SupabaseStore) createTable(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/rest/v1/rpc/create_questions_table", s.baseURL)

	status, _, err := s.do(ctx, http.MethodPost, endpoint, []byte("{}"))
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("create table RPC returned status %d", status)
	}
	logger.Get().Info("Question table created", zap.String("table", s.table))
	return nil
}

func (s *SupabaseStore) do(ctx context.Context, method, endpoint string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

// Static assertion that SupabaseStore implements the port.
var _ domain.QuestionStore = (*SupabaseStore)(nil)
