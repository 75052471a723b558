package domain

import "context"

// QuestionGenerator performs one round-trip to the remote model: compose the
// prompt, call the endpoint, parse and validate the reply. It knows nothing
// about duplicates or persistence; that is the service's job.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, req *QuestionRequest) (*Question, error)
}

// QuestionStore is the boundary to the remote question table. Exists checks
// whether a question with exactly this text was stored before, scoped to
// userID when it is non-empty. Both operations are best-effort from the
// pipeline's point of view.
type QuestionStore interface {
	Exists(ctx context.Context, questionText string, userID string) (bool, error)
	Insert(ctx context.Context, record *QuestionRecord) error
}
