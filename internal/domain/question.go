package domain

import (
	"strings"
	"time"
)

// OptionCount is the number of alternatives (A-E) a generated question targets.
const OptionCount = 5

// Difficulty is the requested difficulty of a generated question.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
)

// ParseDifficulty maps a difficulty string to its enum value. English and
// Portuguese names are accepted; unknown or empty values default to medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(s) {
	case "easy", "facil", "fácil":
		return DifficultyEasy
	case "hard", "dificil", "difícil":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}

// QuestionRequest carries the parameters for one generation run.
// ExamID and Subject are required; Subject is expected to come from the
// catalog's subject list for the exam, but this is the caller's
// responsibility. UserID, when set, scopes duplicate checks to that user.
type QuestionRequest struct {
	ExamID     string
	Subject    string
	Difficulty Difficulty
	UserID     string
}

// Validate validates the request
func (r *QuestionRequest) Validate() error {
	if r.ExamID == "" {
		return NewInvalidInputError("exam is required")
	}
	if r.Subject == "" {
		return NewInvalidInputError("subject is required")
	}
	return nil
}

// Question is one multiple-choice question as shown to a candidate.
// It is immutable once returned by the generation pipeline.
type Question struct {
	Text               string
	Options            []string
	CorrectIndex       int
	Explanation        string
	OptionExplanations []string
}

// Validate checks the structural invariants of a generated question:
// non-empty text and explanation, 2..5 options, a correct index inside the
// option range, and option explanations (when present) parallel to options.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 || len(q.Options) > OptionCount {
		return NewInvalidInputError("question must have between 2 and 5 options")
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return NewInvalidInputError("correct answer index is out of range")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return NewInvalidInputError("explanation is required")
	}
	if len(q.OptionExplanations) > 0 && len(q.OptionExplanations) != len(q.Options) {
		return NewInvalidInputError("option explanations must match the number of options")
	}
	return nil
}

// QuestionRecord is the persistence shape written to the remote question
// store after a question is accepted.
type QuestionRecord struct {
	ID          string
	ExamID      string
	Subject     string
	Difficulty  string
	Question    string
	Options     []string
	Answer      int
	Explanation string
	UserID      string
	CreatedAt   time.Time
}

// NewQuestionRecord builds the store record for an accepted question.
func NewQuestionRecord(id string, req *QuestionRequest, q *Question) *QuestionRecord {
	return &QuestionRecord{
		ID:          id,
		ExamID:      req.ExamID,
		Subject:     req.Subject,
		Difficulty:  req.Difficulty.String(),
		Question:    q.Text,
		Options:     q.Options,
		Answer:      q.CorrectIndex,
		Explanation: q.Explanation,
		UserID:      req.UserID,
		CreatedAt:   time.Now(),
	}
}
