// Package domain defines the records served by the API: questions, the
// answers attached to them, and the pagination window applied when listing.
// The question and answer types double as GORM models for the relational
// store and as JSON bodies on the wire.
package domain

import (
	"strconv"

	"github.com/tbourn/go-qa-backend/internal/apperr"
)

// QuestionID identifies a question. Both stores assign ids from a
// monotonically increasing sequence starting at 1.
type QuestionID int64

// String renders the id in decimal.
func (id QuestionID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseQuestionID parses a path segment into a QuestionID. Non-numeric and
// negative inputs yield an apperr.KindParse error.
func ParseQuestionID(s string) (QuestionID, error) {
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, apperr.Parse(err)
	}
	return QuestionID(n), nil
}

// AnswerID identifies an answer.
type AnswerID int64

// Question is a stored question.
//
// Fields:
//   - ID: assigned on insert; never changes afterwards.
//   - Title / Content: text after moderation.
//   - Tags: optional; nil means "no tags" and is omitted from JSON.
type Question struct {
	ID      QuestionID `json:"id"             gorm:"primaryKey;autoIncrement"`
	Title   string     `json:"title"          gorm:"type:text;not null"`
	Content string     `json:"content"        gorm:"type:text;not null"`
	Tags    []string   `json:"tags,omitempty" gorm:"type:text;serializer:json"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// NewQuestion is the input projection of Question; the store assigns the id.
type NewQuestion struct {
	Title   string   `json:"title"          binding:"required"`
	Content string   `json:"content"        binding:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// Answer is a stored answer. QuestionID is indexed but carries no foreign
// key constraint; existence of the question is checked by the service layer.
type Answer struct {
	ID         AnswerID   `json:"id"          gorm:"primaryKey;autoIncrement"`
	Content    string     `json:"content"     gorm:"type:text;not null"`
	QuestionID QuestionID `json:"question_id" gorm:"not null;index:idx_answers_question"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "answers" }

// NewAnswer is the input projection of Answer.
type NewAnswer struct {
	Content    string     `json:"content"`
	QuestionID QuestionID `json:"question_id"`
}
