package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"questgenius/internal/config"
	"questgenius/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *SupabaseStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := New(config.StoreConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Table:   "questions",
	})
	require.NoError(t, err)
	return s
}

func testRecord() *domain.QuestionRecord {
	return &domain.QuestionRecord{
		ID:          "01HZXTEST",
		ExamID:      "INSS",
		Subject:     "Direito Previdenciário",
		Difficulty:  "medium",
		Question:    "Sobre o RGPS, assinale a correta:",
		Options:     []string{"a", "b", "c", "d", "e"},
		Answer:      2,
		Explanation: "Art. 29 da Lei 8.213/1991.",
		UserID:      "user-1",
		CreatedAt:   time.Now(),
	}
}

func TestExists(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotQuery, gotAPIKey, gotAuth string
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotAPIKey = r.Header.Get("apikey")
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[{"id":"01HZX"}]`))
		})

		exists, err := s.Exists(context.Background(), "Sobre o RGPS, assinale a correta:", "user-1")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Contains(t, gotQuery, "question=eq.")
		assert.Contains(t, gotQuery, "user_id=eq.user-1")
		assert.Equal(t, "test-key", gotAPIKey)
		assert.Equal(t, "Bearer test-key", gotAuth)
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

		exists, err := s.Exists(context.Background(), "inédita", "")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty user id adds no filter", func(t *testing.T) {
		var gotQuery string
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})

		_, err := s.Exists(context.Background(), "qualquer", "")
		assert.NoError(t, err)
		assert.NotContains(t, gotQuery, "user_id")
	})

	t.Run("missing table is remediated then retried", func(t *testing.T) {
		var rpcCalled bool
		var tableGets int
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/rest/v1/rpc/create_questions_table" {
				rpcCalled = true
				w.WriteHeader(http.StatusOK)
				return
			}
			tableGets++
			if !rpcCalled {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`[]`))
		})

		exists, err := s.Exists(context.Background(), "qualquer", "")
		assert.NoError(t, err)
		assert.False(t, exists)
		assert.True(t, rpcCalled)
		assert.Equal(t, 2, tableGets)
	})

	t.Run("failed remediation reports no duplicate", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		exists, err := s.Exists(context.Background(), "qualquer", "")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("server error surfaces persistence error", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := s.Exists(context.Background(), "qualquer", "")
		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodePersistence, domainErr.Code)
	})
}

func TestInsert(t *testing.T) {
	t.Run("success round-trips the record", func(t *testing.T) {
		var gotRow questionRow
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRow))
			w.WriteHeader(http.StatusCreated)
		})

		rec := testRecord()
		assert.NoError(t, s.Insert(context.Background(), rec))

		assert.Equal(t, rec.ID, gotRow.ID)
		assert.Equal(t, rec.Question, gotRow.Question)
		assert.Equal(t, rec.Options, gotRow.Options)
		assert.Equal(t, rec.Answer, gotRow.Answer)
		assert.Equal(t, rec.Explanation, gotRow.Explanation)
		assert.Equal(t, rec.UserID, gotRow.UserID)
	})

	t.Run("missing table is remediated then retried", func(t *testing.T) {
		var rpcCalled bool
		var posts int
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/rest/v1/rpc/create_questions_table" {
				rpcCalled = true
				w.WriteHeader(http.StatusOK)
				return
			}
			posts++
			if !rpcCalled {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusCreated)
		})

		assert.NoError(t, s.Insert(context.Background(), testRecord()))
		assert.True(t, rpcCalled)
		assert.Equal(t, 2, posts)
	})

	t.Run("failed remediation surfaces persistence error", func(t *testing.T) {
		s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := s.Insert(context.Background(), testRecord())
		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodePersistence, domainErr.Code)
	})
}

func TestNewValidation(t *testing.T) {
	_, err := New(config.StoreConfig{APIKey: "k"})
	assert.Error(t, err)

	_, err = New(config.StoreConfig{BaseURL: "https://example.supabase.co"})
	assert.Error(t, err)

	s, err := New(config.StoreConfig{BaseURL: "https://example.supabase.co", APIKey: "k"})
	assert.NoError(t, err)
	assert.Equal(t, "questions", s.table)
}
