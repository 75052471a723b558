package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"questgenius/internal/catalog"
	"questgenius/internal/config"
	"questgenius/internal/dedup"
	"questgenius/internal/domain"
	"questgenius/internal/dto"
	"questgenius/internal/logger"
	"questgenius/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionService defines the question-sourcing operations exposed to handlers
type QuestionService interface {
	Generate(ctx context.Context, req *dto.GenerateQuestionRequest) (*dto.QuestionResponse, error)
	Exams() *dto.ExamsResponse
	Subjects(exam string) *dto.SubjectsResponse
	EditalInfo(exam string) (*dto.EditalResponse, error)
}

// questionService implements QuestionService
type questionService struct {
	generator   domain.QuestionGenerator
	store       domain.QuestionStore
	checker     *dedup.Checker
	maxAttempts int
	group       singleflight.Group
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	generator domain.QuestionGenerator,
	store domain.QuestionStore,
	checker *dedup.Checker,
	cfg *config.Config,
) QuestionService {
	maxAttempts := cfg.Generation.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &questionService{
		generator:   generator,
		store:       store,
		checker:     checker,
		maxAttempts: maxAttempts,
	}
}

// Generate implements QuestionService. It runs the sourcing pipeline:
// generate, parse, dedup-check, regenerate on duplicates up to maxAttempts,
// persist best-effort, and substitute the fixed fallback question when the
// model cannot deliver a valid result. Identical concurrent requests are
// collapsed into a single pipeline run.
func (s *questionService) Generate(ctx context.Context, req *dto.GenerateQuestionRequest) (*dto.QuestionResponse, error) {
	domainReq := &domain.QuestionRequest{
		ExamID:     strings.TrimSpace(req.Exam),
		Subject:    strings.TrimSpace(req.Subject),
		Difficulty: domain.ParseDifficulty(req.Difficulty),
		UserID:     req.UserID,
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%s|%s|%s",
		domainReq.ExamID, domainReq.Subject, domainReq.Difficulty, domainReq.UserID)

	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, domainReq)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Generation request collapsed into in-flight run",
			zap.String("key", key))
	}
	return result.(*dto.QuestionResponse), nil
}

func (s *questionService) generate(ctx context.Context, req *domain.QuestionRequest) (*dto.QuestionResponse, error) {
	var question *domain.Question
	var duplicate bool

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate, err := s.generator.GenerateQuestion(ctx, req)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) &&
				(domainErr.Code == domain.CodeRemoteService || domainErr.Code == domain.CodeMalformedResponse) {
				logger.Get().Warn("Generation failed, serving fallback question",
					zap.String("exam", req.ExamID),
					zap.String("subject", req.Subject),
					zap.String("code", string(domainErr.Code)),
					zap.Error(err))
				return s.toResponse(req, domain.FallbackQuestion(), true), nil
			}
			return nil, domain.NewInternalError("question generation failed", err)
		}

		if s.checker.Seen(ctx, candidate.Text, req.UserID) {
			logger.Get().Info("Duplicate question discarded, regenerating",
				zap.String("exam", req.ExamID),
				zap.String("subject", req.Subject),
				zap.Int("attempt", attempt))
			// Last attempt: return the duplicate rather than loop forever.
			if attempt == s.maxAttempts {
				question = candidate
				duplicate = true
			}
			continue
		}

		question = candidate
		break
	}

	if !duplicate {
		s.accept(ctx, req, question)
	}
	return s.toResponse(req, question, false), nil
}

// accept records the question in the dedup tiers and persists it
// best-effort; store failures are logged and never surfaced.
func (s *questionService) accept(ctx context.Context, req *domain.QuestionRequest, q *domain.Question) {
	s.checker.Record(ctx, q.Text, req.UserID)

	if s.store == nil {
		return
	}
	record := domain.NewQuestionRecord(util.NewULID(), req, q)
	if err := s.store.Insert(ctx, record); err != nil {
		logger.Get().Warn("Failed to persist accepted question",
			zap.String("exam", req.ExamID),
			zap.String("record_id", record.ID),
			zap.Error(err))
	}
}

func (s *questionService) toResponse(req *domain.QuestionRequest, q *domain.Question, fallback bool) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		Question:                q.Text,
		Options:                 q.Options,
		Answer:                  q.CorrectIndex,
		Explanation:             q.Explanation,
		AlternativeExplanations: optionExplanations(q),
		Exam:                    req.ExamID,
		Subject:                 req.Subject,
		Fallback:                fallback,
	}
}

// optionExplanations returns the per-option rationales, substituting a
// generic placeholder per option when the model omitted them.
func optionExplanations(q *domain.Question) []string {
	if len(q.OptionExplanations) == len(q.Options) {
		return q.OptionExplanations
	}
	out := make([]string, len(q.Options))
	for i := range q.Options {
		if i == q.CorrectIndex {
			out[i] = "Esta é a alternativa correta. Consulte a explicação geral da questão para a fundamentação completa."
		} else {
			out[i] = "Esta alternativa está incorreta. Consulte a explicação geral da questão para entender o erro."
		}
	}
	return out
}

// Exams implements QuestionService
func (s *questionService) Exams() *dto.ExamsResponse {
	return &dto.ExamsResponse{Exams: catalog.Exams()}
}

// Subjects implements QuestionService
func (s *questionService) Subjects(exam string) *dto.SubjectsResponse {
	return &dto.SubjectsResponse{
		Exam:     exam,
		Subjects: catalog.GetSubjects(exam),
	}
}

// EditalInfo implements QuestionService
func (s *questionService) EditalInfo(exam string) (*dto.EditalResponse, error) {
	info, ok := catalog.GetEditalInfo(exam)
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No edital information for exam: %s", exam))
	}
	return &dto.EditalResponse{
		Exam:     info.Exam,
		Year:     info.Year,
		Subjects: info.Subjects,
		URL:      info.URL,
	}, nil
}
