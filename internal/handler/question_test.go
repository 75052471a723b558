package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"questgenius/internal/domain"
	"questgenius/internal/dto"
	"questgenius/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Generate(ctx context.Context, req *dto.GenerateQuestionRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockQuestionService) Exams() *dto.ExamsResponse {
	args := m.Called()
	return args.Get(0).(*dto.ExamsResponse)
}

func (m *MockQuestionService) Subjects(exam string) *dto.SubjectsResponse {
	args := m.Called(exam)
	return args.Get(0).(*dto.SubjectsResponse)
}

func (m *MockQuestionService) EditalInfo(exam string) (*dto.EditalResponse, error) {
	args := m.Called(exam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EditalResponse), args.Error(1)
}

func newTestApp(svc *MockQuestionService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := NewQuestionHandler(svc)
	api := app.Group("/api")
	api.Post("/questions", h.GenerateQuestion)
	api.Get("/exams", h.GetExams)
	api.Get("/exams/:exam/subjects", h.GetSubjects)
	api.Get("/exams/:exam/edital", h.GetEditalInfo)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestGenerateQuestionHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockQuestionService{}
		app := newTestApp(svc)

		expected := &dto.QuestionResponse{
			Question:                "Enunciado",
			Options:                 []string{"a", "b", "c", "d", "e"},
			Answer:                  2,
			Explanation:             "Porque sim, com fundamento legal.",
			AlternativeExplanations: []string{"1", "2", "3", "4", "5"},
			Exam:                    "INSS",
			Subject:                 "Direito Previdenciário",
		}
		svc.On("Generate", mock.Anything, mock.MatchedBy(func(req *dto.GenerateQuestionRequest) bool {
			return req.Exam == "INSS" && req.Subject == "Direito Previdenciário"
		})).Return(expected, nil).Once()

		resp := postJSON(t, app, "/api/questions", dto.GenerateQuestionRequest{
			Exam:    "INSS",
			Subject: "Direito Previdenciário",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.QuestionResponse
		decode(t, resp, &got)
		assert.Equal(t, *expected, got)
		svc.AssertExpectations(t)
	})

	t.Run("invalid input maps to 400", func(t *testing.T) {
		svc := &MockQuestionService{}
		app := newTestApp(svc)

		svc.On("Generate", mock.Anything, mock.Anything).
			Return(nil, domain.NewInvalidInputError("exam is required")).Once()

		resp := postJSON(t, app, "/api/questions", dto.GenerateQuestionRequest{Subject: "Direito Penal"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var got middleware.ErrorResponse
		decode(t, resp, &got)
		assert.Equal(t, "INVALID_INPUT", got.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &MockQuestionService{}
		app := newTestApp(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestGetExamsHandler(t *testing.T) {
	svc := &MockQuestionService{}
	app := newTestApp(svc)
	svc.On("Exams").Return(&dto.ExamsResponse{Exams: []string{"INSS", "TJSP"}}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/exams", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.ExamsResponse
	decode(t, resp, &got)
	assert.Equal(t, []string{"INSS", "TJSP"}, got.Exams)
}

func TestGetSubjectsHandler(t *testing.T) {
	svc := &MockQuestionService{}
	app := newTestApp(svc)
	svc.On("Subjects", "PMSP - São Paulo").Return(&dto.SubjectsResponse{
		Exam:     "PMSP - São Paulo",
		Subjects: []string{"Direito Constitucional"},
	}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/exams/PMSP%20-%20S%C3%A3o%20Paulo/subjects", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGetEditalInfoHandler(t *testing.T) {
	t.Run("known exam", func(t *testing.T) {
		svc := &MockQuestionService{}
		app := newTestApp(svc)
		svc.On("EditalInfo", "TJSP").Return(&dto.EditalResponse{
			Exam: "TJSP",
			Year: 2024,
			URL:  "https://conhecimento.fgv.br/concursos/tjsp23",
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/exams/TJSP/edital", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.EditalResponse
		decode(t, resp, &got)
		assert.Equal(t, 2024, got.Year)
	})

	t.Run("unknown exam maps to 404", func(t *testing.T) {
		svc := &MockQuestionService{}
		app := newTestApp(svc)
		svc.On("EditalInfo", "UNKNOWN").
			Return(nil, domain.NewNotFoundError("No edital information for exam: UNKNOWN")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/exams/UNKNOWN/edital", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var got middleware.ErrorResponse
		decode(t, resp, &got)
		assert.Equal(t, "NOT_FOUND", got.Code)
	})
}
