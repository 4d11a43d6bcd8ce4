// Package handlers provides the HTTP handlers of the public API.
//
// Handlers are transport-thin: they parse path, query and body input, call
// the services, and write success responses. Failures are recorded with
// c.Error and rendered by ErrorHandler.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// QuestionService defines the question operations consumed by the handlers.
//
// Implementations must be safe for concurrent use and honor ctx.
type QuestionService interface {
	List(ctx context.Context, p domain.Pagination) ([]domain.Question, error)
	Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error)
	Add(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error)
	Update(ctx context.Context, id domain.QuestionID, q domain.Question) (*domain.Question, error)
	Delete(ctx context.Context, id domain.QuestionID) error
}

// AnswerService defines the answer operations consumed by the handlers.
type AnswerService interface {
	Add(ctx context.Context, na domain.NewAnswer) (*domain.Answer, error)
	List(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error)
}

// Handlers groups the question and answer endpoints.
type Handlers struct {
	questions QuestionService
	answers   AnswerService
}

// New constructs a Handlers bound to the given services.
func New(questions QuestionService, answers AnswerService) *Handlers {
	return &Handlers{questions: questions, answers: answers}
}

// pathID parses the :id path segment.
func pathID(c *gin.Context) (domain.QuestionID, error) {
	return domain.ParseQuestionID(c.Param("id"))
}

// queryParams flattens the query string to its first value per key.
func queryParams(c *gin.Context) map[string]string {
	q := c.Request.URL.Query()
	out := make(map[string]string, len(q))
	for k, vv := range q {
		if len(vv) > 0 {
			out[k] = vv[0]
		}
	}
	return out
}
