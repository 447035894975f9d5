package repo

import (
	"context"

	"pattern-share/services/pattern/internal/entity"
)

// PatternRepository persists pattern records. Implementations translate
// driver errors into entity.ErrPatternNotFound and entity.ErrDuplicateSlug.
type PatternRepository interface {
	Create(ctx context.Context, pattern *entity.Pattern) error
	GetBySlug(ctx context.Context, slug string) (*entity.Pattern, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Search matches query as a case-insensitive substring of the name,
	// author or description and returns the newest patterns first.
	Search(ctx context.Context, query string) ([]*entity.Pattern, error)
	// IncrementLikes adds one like atomically and returns the new total.
	IncrementLikes(ctx context.Context, slug string) (int64, error)
	Ping(ctx context.Context) error
}
