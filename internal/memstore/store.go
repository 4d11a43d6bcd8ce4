// Package memstore is the in-memory question/answer store. Collections live
// in maps guarded by one readers-writer lock each; the lock is held only for
// the single map operation of a call and never across I/O.
//
// Ids are assigned from per-collection counters, so the listing order (by
// id) is insertion order and stays stable across calls.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Store implements services.Store in memory. The zero value is not usable;
// call New.
type Store struct {
	qmu       sync.RWMutex
	questions map[domain.QuestionID]domain.Question
	nextQ     domain.QuestionID

	amu     sync.RWMutex
	answers map[domain.AnswerID]domain.Answer
	nextA   domain.AnswerID
}

// New returns an empty store.
func New() *Store {
	return &Store{
		questions: make(map[domain.QuestionID]domain.Question),
		answers:   make(map[domain.AnswerID]domain.Answer),
	}
}

// ListQuestions returns questions ordered by id, windowed by p. Windows
// beyond the collection are clamped rather than rejected.
func (s *Store) ListQuestions(_ context.Context, p domain.Pagination) ([]domain.Question, error) {
	s.qmu.RLock()
	all := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		all = append(all, cloneQuestion(q))
	}
	s.qmu.RUnlock()

	slices.SortFunc(all, func(a, b domain.Question) int { return cmpID(int64(a.ID), int64(b.ID)) })
	lo, hi := p.Window(len(all))
	return all[lo:hi], nil
}

// GetQuestion returns the question at id.
func (s *Store) GetQuestion(_ context.Context, id domain.QuestionID) (*domain.Question, error) {
	s.qmu.RLock()
	q, ok := s.questions[id]
	s.qmu.RUnlock()
	if !ok {
		return nil, apperr.QuestionNotFound()
	}
	out := cloneQuestion(q)
	return &out, nil
}

// CreateQuestion assigns the next id and stores nq. Identical inputs create
// distinct records.
func (s *Store) CreateQuestion(_ context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	s.qmu.Lock()
	s.nextQ++
	q := domain.Question{
		ID:      s.nextQ,
		Title:   nq.Title,
		Content: nq.Content,
		Tags:    slices.Clone(nq.Tags),
	}
	s.questions[q.ID] = q
	s.qmu.Unlock()

	out := cloneQuestion(q)
	return &out, nil
}

// UpdateQuestion overwrites every field of the record at id. The id of q is
// ignored; the stored record keeps id.
func (s *Store) UpdateQuestion(_ context.Context, id domain.QuestionID, q domain.Question) (*domain.Question, error) {
	q.ID = id
	q.Tags = slices.Clone(q.Tags)

	s.qmu.Lock()
	if _, ok := s.questions[id]; !ok {
		s.qmu.Unlock()
		return nil, apperr.QuestionNotFound()
	}
	s.questions[id] = q
	s.qmu.Unlock()

	out := cloneQuestion(q)
	return &out, nil
}

// DeleteQuestion removes the record at id. Answers referencing it are kept.
func (s *Store) DeleteQuestion(_ context.Context, id domain.QuestionID) error {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return apperr.QuestionNotFound()
	}
	delete(s.questions, id)
	return nil
}

// CreateAnswer assigns the next answer id and stores na. The referenced
// question is not checked.
func (s *Store) CreateAnswer(_ context.Context, na domain.NewAnswer) (*domain.Answer, error) {
	s.amu.Lock()
	s.nextA++
	a := domain.Answer{ID: s.nextA, Content: na.Content, QuestionID: na.QuestionID}
	s.answers[a.ID] = a
	s.amu.Unlock()
	return &a, nil
}

// ListAnswers returns the answers of questionID ordered by id.
func (s *Store) ListAnswers(_ context.Context, questionID domain.QuestionID) ([]domain.Answer, error) {
	s.amu.RLock()
	out := make([]domain.Answer, 0)
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	s.amu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Answer) int { return cmpID(int64(a.ID), int64(b.ID)) })
	return out, nil
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Tags = slices.Clone(q.Tags)
	return q
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
