// Package services holds the question and answer use cases. Handlers talk to
// the services; the services talk to a Store (in-memory or relational) and to
// a Censor that scrubs user text before anything is persisted.
package services

import (
	"context"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Store is the persistence contract shared by the in-memory and relational
// backends. Both implementations must behave identically:
//   - missing question ids surface as apperr.KindQuestionNotFound
//   - backend failures surface as apperr.KindDatabaseQuery
//   - listings are ordered by id and windowed by domain.Pagination
type Store interface {
	ListQuestions(ctx context.Context, p domain.Pagination) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id domain.QuestionID) (*domain.Question, error)
	// CreateQuestion is not idempotent; identical inputs create distinct rows.
	CreateQuestion(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error)
	// UpdateQuestion overwrites every field of the record at id. The id in q
	// is ignored.
	UpdateQuestion(ctx context.Context, id domain.QuestionID, q domain.Question) (*domain.Question, error)
	// DeleteQuestion leaves the question's answers in place.
	DeleteQuestion(ctx context.Context, id domain.QuestionID) error
	CreateAnswer(ctx context.Context, na domain.NewAnswer) (*domain.Answer, error)
	ListAnswers(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error)
}

// Censor returns text with profanity masked. Failures are apperr values of
// kind ExternalAPI, Client or Server.
type Censor interface {
	Censor(ctx context.Context, text string) (string, error)
}
