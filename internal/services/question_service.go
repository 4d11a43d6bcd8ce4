// Package services – QuestionService
//
// QuestionService runs user text through the Censor before every write and
// then delegates to the Store. Moderation happens strictly before the store
// call, so a moderation failure never leaves a partial write behind.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// QuestionService provides the question use cases.
type QuestionService struct {
	Store  Store
	Censor Censor
}

// NewQuestionService wires a QuestionService.
func NewQuestionService(store Store, censor Censor) *QuestionService {
	return &QuestionService{Store: store, Censor: censor}
}

// List returns the questions inside window p.
func (s *QuestionService) List(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "List")
	defer span.End()
	if p.Limit != nil {
		span.SetAttributes(attribute.Int64("page.limit", int64(*p.Limit)))
	}
	span.SetAttributes(attribute.Int64("page.offset", int64(p.Offset)))

	return s.Store.ListQuestions(ctx, p)
}

// Get returns one question.
func (s *QuestionService) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("question.id", int64(id))),
	)
	defer span.End()

	return s.Store.GetQuestion(ctx, id)
}

// Add censors title then content, normalizes tags and stores the result.
func (s *QuestionService) Add(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Add")
	defer span.End()

	title, content, err := s.censorPair(ctx, nq.Title, nq.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.Store.CreateQuestion(ctx, domain.NewQuestion{
		Title:   title,
		Content: content,
		Tags:    normalizeTags(nq.Tags),
	})
}

// Update censors the incoming record and overwrites the question at id.
func (s *QuestionService) Update(ctx context.Context, id domain.QuestionID, q domain.Question) (*domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("question.id", int64(id))),
	)
	defer span.End()

	title, content, err := s.censorPair(ctx, q.Title, q.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.Store.UpdateQuestion(ctx, id, domain.Question{
		ID:      id,
		Title:   title,
		Content: content,
		Tags:    normalizeTags(q.Tags),
	})
}

// Delete removes the question at id.
func (s *QuestionService) Delete(ctx context.Context, id domain.QuestionID) error {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("question.id", int64(id))),
	)
	defer span.End()

	return s.Store.DeleteQuestion(ctx, id)
}

func (s *QuestionService) censorPair(ctx context.Context, title, content string) (string, string, error) {
	t, err := s.Censor.Censor(ctx, title)
	if err != nil {
		return "", "", err
	}
	c, err := s.Censor.Censor(ctx, content)
	if err != nil {
		return "", "", err
	}
	return t, c, nil
}
