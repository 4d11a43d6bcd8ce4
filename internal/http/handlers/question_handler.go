// Question HTTP handlers.
//
// This file exposes REST endpoints for question resources:
//   - GET    /questions            (list; ?limit&offset or ?start&end)
//   - GET    /questions/{id}       (fetch)
//   - POST   /questions            (create, moderated)
//   - PUT    /questions/{id}       (full overwrite, moderated)
//   - DELETE /questions/{id}       (remove)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/utils"
)

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns questions ordered by id. Without query parameters the full set is returned.
// @Description Either limit+offset or start+end must be supplied as a pair; windows past the end yield an empty or shortened page.
// @Tags        Questions
// @Produce     json
//
// @Param       limit   query  int  false  "Page size"                 minimum(0)
// @Param       offset  query  int  false  "Rows to skip"              minimum(0)
// @Param       start   query  int  false  "First index (inclusive)"   minimum(0)
// @Param       end     query  int  false  "Last index (exclusive)"    minimum(0)
//
// @Success     200  {array}   domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Unparseable or missing pagination parameter"
// @Failure     500  {object}  handlers.ErrorResponse  "Database error"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	lg := middleware.LoggerFrom(c)
	lg.Info().Msg("querying questions")

	var p domain.Pagination
	if params := queryParams(c); len(params) > 0 {
		lg.Info().Bool("pagination", true).Msg("pagination parameters supplied")
		var err error
		if p, err = utils.PaginationFromQuery(params); err != nil {
			abortWith(c, err)
			return
		}
	}

	items, err := h.questions.List(c.Request.Context(), p)
	if err != nil {
		abortWith(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Fetch a question
// @Tags        Questions
// @Produce     json
//
// @Param       id  path  int  true  "Question ID"  minimum(0)
//
// @Success     200  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Database error"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	q, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// AddQuestion godoc
// @ID          addQuestion
// @Summary     Create a question
// @Description Title and content are passed through the profanity filter before the question is stored.
// @Description The call is not idempotent: repeating it creates another question.
// @Tags        Questions
// @Accept      json
// @Produce     plain
//
// @Param       body  body  domain.NewQuestion  true  "Question payload"
//
// @Success     200  {string}  string                  "Question added"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     424  {object}  handlers.ErrorResponse  "Moderation rejected the request"
// @Failure     500  {object}  handlers.ErrorResponse  "Database error"
// @Failure     502  {object}  handlers.ErrorResponse  "Moderation service unreachable"
// @Failure     503  {object}  handlers.ErrorResponse  "Moderation service failing"
// @Router      /questions [post]
func (h *Handlers) AddQuestion(c *gin.Context) {
	var req domain.NewQuestion
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, &BodyError{Err: err})
		return
	}
	q, err := h.questions.Add(c.Request.Context(), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().Int64("question_id", int64(q.ID)).Msg("question added")
	text(c, "Question added")
}

// UpdateQuestionRequest is the JSON payload for PUT /questions/{id}. An id
// in the body is accepted for compatibility and ignored.
type UpdateQuestionRequest struct {
	ID      domain.QuestionID `json:"id,omitempty" example:"1"`
	Title   string            `json:"title"   binding:"required" example:"How do I paginate?"`
	Content string            `json:"content" binding:"required" example:"Looking for offset semantics."`
	Tags    []string          `json:"tags,omitempty" example:"go,http"`
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Replace a question
// @Description Overwrites every field of the question at id. The path id wins over any id in the body.
// @Tags        Questions
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                             true  "Question ID"  minimum(0)
// @Param       body  body  handlers.UpdateQuestionRequest  true  "Replacement"
//
// @Success     200  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     424  {object}  handlers.ErrorResponse  "Moderation rejected the request"
// @Failure     502  {object}  handlers.ErrorResponse  "Moderation service unreachable"
// @Failure     503  {object}  handlers.ErrorResponse  "Moderation service failing"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, &BodyError{Err: err})
		return
	}
	if req.ID != 0 && req.ID != id {
		middleware.LoggerFrom(c).Debug().
			Int64("path_id", int64(id)).
			Int64("body_id", int64(req.ID)).
			Msg("ignoring body id")
	}

	q, err := h.questions.Update(c.Request.Context(), id, domain.Question{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Description Answers attached to the question are kept.
// @Tags        Questions
// @Produce     plain
//
// @Param       id  path  int  true  "Question ID"  minimum(0)
//
// @Success     200  {string}  string                  "Question {id} deleted"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Database error"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		abortWith(c, err)
		return
	}
	text(c, fmt.Sprintf("Question %d deleted", id))
}
