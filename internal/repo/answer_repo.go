// Package repo implements the relational question/answer store, backed by
// GORM. This file provides the answer queries.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// CreateAnswer inserts na. The question id is stored as given.
func CreateAnswer(ctx context.Context, db *gorm.DB, na domain.NewAnswer) (*domain.Answer, error) {
	a := &domain.Answer{Content: na.Content, QuestionID: na.QuestionID}
	return a, db.WithContext(ctx).Create(a).Error
}

// ListAnswers returns the answers of a question ordered by id.
func ListAnswers(ctx context.Context, db *gorm.DB, questionID domain.QuestionID) ([]domain.Answer, error) {
	out := make([]domain.Answer, 0)
	err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
