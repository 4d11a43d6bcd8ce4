// Answer HTTP handlers.
//
//   - POST /answers                 (create, moderated; form or JSON body)
//   - GET  /questions/{id}/answers  (list answers of a question)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// legacyQuestionIDField is the form key used by older clients.
const legacyQuestionIDField = "questionId"

var errMissingQuestionID = errors.New("question_id is required")

// AddAnswerRequest is the payload of POST /answers, accepted as JSON or as
// an urlencoded/multipart form.
type AddAnswerRequest struct {
	Content    string            `json:"content"     form:"content"     binding:"required" example:"Use LIMIT/OFFSET."`
	QuestionID domain.QuestionID `json:"question_id" form:"question_id" example:"1"`
}

// AddAnswer godoc
// @ID          addAnswer
// @Summary     Answer a question
// @Description Content is passed through the profanity filter. The question must exist.
// @Description Form bodies may use the legacy key questionId instead of question_id.
// @Tags        Answers
// @Accept      json,x-www-form-urlencoded
// @Produce     plain
//
// @Param       body  body  handlers.AddAnswerRequest  true  "Answer payload"
//
// @Success     200  {string}  string                  "Answer added"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid legacy question id"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     424  {object}  handlers.ErrorResponse  "Moderation rejected the request"
// @Failure     502  {object}  handlers.ErrorResponse  "Moderation service unreachable"
// @Failure     503  {object}  handlers.ErrorResponse  "Moderation service failing"
// @Router      /answers [post]
func (h *Handlers) AddAnswer(c *gin.Context) {
	var req AddAnswerRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWith(c, &BodyError{Err: err})
		return
	}
	if req.QuestionID == 0 && c.ContentType() != binding.MIMEJSON {
		if raw := strings.TrimSpace(c.PostForm(legacyQuestionIDField)); raw != "" {
			id, err := domain.ParseQuestionID(raw)
			if err != nil {
				abortWith(c, err)
				return
			}
			req.QuestionID = id
		}
	}
	if req.QuestionID == 0 {
		abortWith(c, &BodyError{Err: errMissingQuestionID})
		return
	}

	a, err := h.answers.Add(c.Request.Context(), domain.NewAnswer{Content: req.Content, QuestionID: req.QuestionID})
	if err != nil {
		abortWith(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().
		Int64("answer_id", int64(a.ID)).
		Int64("question_id", int64(a.QuestionID)).
		Msg("answer added")
	text(c, "Answer added")
}

// ListAnswers godoc
// @ID          listAnswers
// @Summary     List answers of a question
// @Tags        Answers
// @Produce     json
//
// @Param       id  path  int  true  "Question ID"  minimum(0)
//
// @Success     200  {array}   domain.Answer
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Database error"
// @Router      /questions/{id}/answers [get]
func (h *Handlers) ListAnswers(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	items, err := h.answers.List(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}
