// Package seed loads questions from a JSON or JSONC file into a store.
// The file holds an array of objects shaped like domain.NewQuestion;
// comments and trailing commas are allowed.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tailscale/hujson"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ErrInvalidSeed marks a seed file that parsed but holds an unusable entry.
var ErrInvalidSeed = errors.New("invalid seed entry")

// Creator is the slice of the store used for seeding.
type Creator interface {
	CreateQuestion(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error)
}

// Parse decodes a JSONC array of questions. Every entry needs a non-blank
// title and content.
func Parse(data []byte) ([]domain.NewQuestion, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	var qs []domain.NewQuestion
	if err := json.Unmarshal(std, &qs); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	for i, q := range qs {
		if strings.TrimSpace(q.Title) == "" || strings.TrimSpace(q.Content) == "" {
			return nil, fmt.Errorf("%w: entry %d needs title and content", ErrInvalidSeed, i)
		}
	}
	return qs, nil
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) ([]domain.NewQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return qs, nil
}

// Apply inserts qs in order and returns how many were stored. It stops at
// the first failure; earlier inserts are kept.
func Apply(ctx context.Context, store Creator, qs []domain.NewQuestion) (int, error) {
	for i, q := range qs {
		if _, err := store.CreateQuestion(ctx, q); err != nil {
			return i, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	log.Info().Int("questions", len(qs)).Msg("seed applied")
	return len(qs), nil
}

// Run loads path into store. An empty path is a no-op.
func Run(ctx context.Context, store Creator, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, nil
	}
	qs, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	return Apply(ctx, store, qs)
}
