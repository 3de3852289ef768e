package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SequenceRepository hands out monotonic per-scope counters for document
// numbering. Next must stay atomic per scope under concurrent callers.
type SequenceRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next bumps the counter for scope in a single upsert-returning statement,
// so two concurrent callers can never read the same value.
func (r *sequenceRepository) Next(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := GetDB(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (scope, value) VALUES (?, 1)
		ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`, scope).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", scope, err)
	}
	return value, nil
}

// ScopedKey builds the counter key for per-project document sequences.
func ScopedKey(scope, projectID string) string {
	return scope + ":" + projectID
}
