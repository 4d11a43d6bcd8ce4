package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// AnswerService provides the answer use cases.
//
// Unlike the Store, which accepts any question id, Add rejects answers to
// questions that do not exist.
type AnswerService struct {
	Store  Store
	Censor Censor
}

// NewAnswerService wires an AnswerService.
func NewAnswerService(store Store, censor Censor) *AnswerService {
	return &AnswerService{Store: store, Censor: censor}
}

// Add censors the answer text, checks the question exists and stores it.
func (s *AnswerService) Add(ctx context.Context, na domain.NewAnswer) (*domain.Answer, error) {
	ctx, span := otel.Tracer("services/AnswerService").Start(ctx, "Add",
		trace.WithAttributes(attribute.Int64("question.id", int64(na.QuestionID))),
	)
	defer span.End()

	content, err := s.Censor.Censor(ctx, na.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if _, err := s.Store.GetQuestion(ctx, na.QuestionID); err != nil {
		return nil, err
	}
	return s.Store.CreateAnswer(ctx, domain.NewAnswer{Content: content, QuestionID: na.QuestionID})
}

// List returns the answers of a question, or KindQuestionNotFound when the
// question itself is gone.
func (s *AnswerService) List(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error) {
	ctx, span := otel.Tracer("services/AnswerService").Start(ctx, "List",
		trace.WithAttributes(attribute.Int64("question.id", int64(questionID))),
	)
	defer span.End()

	if _, err := s.Store.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.Store.ListAnswers(ctx, questionID)
}
