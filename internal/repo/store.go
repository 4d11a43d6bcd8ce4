// Package repo implements the relational question/answer store, backed by
// GORM. This file adapts the query functions to the services.Store contract.
//
// Error semantics:
//   - gorm.ErrRecordNotFound becomes apperr.KindQuestionNotFound.
//   - Any other failure is logged and becomes apperr.KindDatabaseQuery; the
//     driver error stays reachable through errors.Unwrap.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Store is the relational implementation of services.Store.
type Store struct {
	DB *gorm.DB
	// QueryTimeout bounds each call, including the wait for a pooled
	// connection. Zero disables the bound.
	QueryTimeout time.Duration
}

// NewStore wraps db.
func NewStore(db *gorm.DB, queryTimeout time.Duration) *Store {
	return &Store{DB: db, QueryTimeout: queryTimeout}
}

func (s *Store) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}

// ListQuestions proxies ListQuestions.
func (s *Store) ListQuestions(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	out, err := ListQuestions(ctx, s.DB, p)
	if err != nil {
		return nil, translate("list_questions", err)
	}
	return out, nil
}

// GetQuestion proxies GetQuestion.
func (s *Store) GetQuestion(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	q, err := GetQuestion(ctx, s.DB, id)
	if err != nil {
		return nil, translate("get_question", err)
	}
	return q, nil
}

// CreateQuestion proxies CreateQuestion.
func (s *Store) CreateQuestion(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	q, err := CreateQuestion(ctx, s.DB, nq)
	if err != nil {
		return nil, translate("create_question", err)
	}
	return q, nil
}

// UpdateQuestion proxies UpdateQuestion.
func (s *Store) UpdateQuestion(ctx context.Context, id domain.QuestionID, q domain.Question) (*domain.Question, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	out, err := UpdateQuestion(ctx, s.DB, id, q)
	if err != nil {
		return nil, translate("update_question", err)
	}
	return out, nil
}

// DeleteQuestion proxies DeleteQuestion.
func (s *Store) DeleteQuestion(ctx context.Context, id domain.QuestionID) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	if err := DeleteQuestion(ctx, s.DB, id); err != nil {
		return translate("delete_question", err)
	}
	return nil
}

// CreateAnswer proxies CreateAnswer.
func (s *Store) CreateAnswer(ctx context.Context, na domain.NewAnswer) (*domain.Answer, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	a, err := CreateAnswer(ctx, s.DB, na)
	if err != nil {
		return nil, translate("create_answer", err)
	}
	return a, nil
}

// ListAnswers proxies ListAnswers.
func (s *Store) ListAnswers(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	out, err := ListAnswers(ctx, s.DB, questionID)
	if err != nil {
		return nil, translate("list_answers", err)
	}
	return out, nil
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.QuestionNotFound()
	}
	log.Error().Err(err).Str("op", op).Msg("database query failed")
	return apperr.DatabaseQuery(err)
}
