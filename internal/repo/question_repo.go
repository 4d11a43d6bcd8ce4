// Package repo implements the relational question/answer store, backed by
// GORM. This file provides the question queries.
//
// All functions are context-aware and accept a *gorm.DB handle, so they work
// on a plain handle or inside a transaction. They return raw GORM errors;
// translation into the application taxonomy happens in Store.
//
// Rows are always ordered by id so that LIMIT/OFFSET windows are stable.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ListQuestions returns questions ordered by id, windowed by p. A nil limit
// returns every row from the offset on.
func ListQuestions(ctx context.Context, db *gorm.DB, p domain.Pagination) ([]domain.Question, error) {
	out := make([]domain.Question, 0)
	q := db.WithContext(ctx).Order("id ASC")
	if p.Offset > 0 {
		q = q.Offset(int(p.Offset))
	}
	if p.Limit != nil {
		q = q.Limit(int(*p.Limit))
	}
	err := q.Find(&out).Error
	return out, err
}

// GetQuestion fetches one question. A missing row yields gorm.ErrRecordNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID) (*domain.Question, error) {
	var q domain.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts nq and returns the row with its generated id.
func CreateQuestion(ctx context.Context, db *gorm.DB, nq domain.NewQuestion) (*domain.Question, error) {
	q := &domain.Question{
		Title:   nq.Title,
		Content: nq.Content,
		Tags:    nq.Tags,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuestion overwrites title, content and tags of the row at id, zero
// values included. If no row matches, it returns gorm.ErrRecordNotFound.
func UpdateQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID, q domain.Question) (*domain.Question, error) {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Select("title", "content", "tags").
		Updates(domain.Question{Title: q.Title, Content: q.Content, Tags: q.Tags})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	q.ID = id
	return &q, nil
}

// DeleteQuestion removes the row at id, or returns gorm.ErrRecordNotFound.
// Answers pointing at the question are left in place.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
