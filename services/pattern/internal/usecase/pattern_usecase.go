package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pattern-share/pkg/cache"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/metrics"
	"pattern-share/pkg/queue"
	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/repo"
)

const publishTimeout = 5 * time.Second

type PatternUseCase interface {
	GetPattern(ctx context.Context, slug string) (*entity.Pattern, error)
	SearchPatterns(ctx context.Context, query string) ([]*entity.Pattern, error)
	UploadPattern(ctx context.Context, input entity.PatternInput) (*entity.Pattern, error)
	LikePattern(ctx context.Context, slug string) (int64, error)
}

// ContentFilter screens free text for blocked terms.
type ContentFilter interface {
	MatchedTerm(text string) (string, bool)
}

// EventPublisher delivers domain events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type PatternEvent struct {
	Slug        string    `json:"slug"`
	PatternName string    `json:"patternName,omitempty"`
	AuthorName  string    `json:"authorName,omitempty"`
	Likes       int64     `json:"likes"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type patternUseCase struct {
	patternRepo repo.PatternRepository
	filter      ContentFilter
	cache       cache.Cache
	cacheTTL    time.Duration
	publisher   EventPublisher
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

type Option func(*patternUseCase)

// WithCache enables read-through caching of patterns and their like counts by slug.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(uc *patternUseCase) {
		uc.cache = c
		uc.cacheTTL = ttl
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(uc *patternUseCase) {
		uc.publisher = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *patternUseCase) {
		uc.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *patternUseCase) {
		uc.now = now
	}
}

func NewPatternUseCase(
	patternRepo repo.PatternRepository,
	filter ContentFilter,
	logger *logger.Logger,
	opts ...Option,
) PatternUseCase {
	uc := &patternUseCase{
		patternRepo: patternRepo,
		filter:      filter,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetPattern reads through the cache. The record and its like count are
// cached under separate keys: the record never changes after upload, and the
// count is only ever raised, so an older read cannot overwrite a newer like.
func (uc *patternUseCase) GetPattern(ctx context.Context, slug string) (*entity.Pattern, error) {
	if uc.cache != nil {
		if cached, ok := uc.cachedPattern(ctx, slug); ok {
			uc.metrics.CacheLookup(true)
			return cached, nil
		}
		uc.metrics.CacheLookup(false)
	}

	pattern, err := uc.patternRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey(slug), pattern, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache pattern %s: %v", slug, err)
		}
		if err := uc.cache.SetMax(ctx, likesCacheKey(slug), pattern.Likes, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache likes for %s: %v", slug, err)
		}
	}
	return pattern, nil
}

func (uc *patternUseCase) cachedPattern(ctx context.Context, slug string) (*entity.Pattern, bool) {
	var cached entity.Pattern
	found, err := uc.cache.Get(ctx, cacheKey(slug), &cached)
	if err != nil {
		uc.logger.Warn("Failed to read pattern %s from cache: %v", slug, err)
	}
	if !found {
		return nil, false
	}

	var likes int64
	found, err = uc.cache.Get(ctx, likesCacheKey(slug), &likes)
	if err != nil {
		uc.logger.Warn("Failed to read likes for %s from cache: %v", slug, err)
	}
	if !found {
		return nil, false
	}

	cached.Likes = likes
	return &cached, true
}

func (uc *patternUseCase) SearchPatterns(ctx context.Context, query string) ([]*entity.Pattern, error) {
	if query == "" {
		return nil, entity.ErrEmptyQuery
	}
	return uc.patternRepo.Search(ctx, query)
}

func (uc *patternUseCase) UploadPattern(ctx context.Context, input entity.PatternInput) (*entity.Pattern, error) {
	if err := input.Validate(); err != nil {
		uc.metrics.UploadRejected("missing_field")
		return nil, err
	}

	exists, err := uc.patternRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.metrics.UploadRejected("duplicate_slug")
		return nil, entity.ErrDuplicateSlug
	}

	for _, field := range input.ModeratedFields() {
		if term, found := uc.filter.MatchedTerm(field.Value); found {
			uc.logger.Warn("Rejected upload %q: blocked term %q in %s", input.Slug, term, field.Name)
			uc.metrics.UploadRejected("blocked_term")
			return nil, fmt.Errorf("%w in %s", entity.ErrBlockedTerm, field.Name)
		}
	}

	pattern, err := entity.NewPattern(input, uc.now())
	if err != nil {
		uc.metrics.UploadRejected("file_type")
		return nil, err
	}

	if err := uc.patternRepo.Create(ctx, pattern); err != nil {
		if errors.Is(err, entity.ErrDuplicateSlug) {
			uc.metrics.UploadRejected("duplicate_slug")
		}
		return nil, err
	}

	uc.metrics.PatternUploaded()
	uc.publish(queue.RoutingKeyPatternUploaded, PatternEvent{
		Slug:        pattern.Slug,
		PatternName: pattern.PatternName,
		AuthorName:  pattern.AuthorName,
		OccurredAt:  pattern.DateUploaded,
	})

	return pattern, nil
}

func (uc *patternUseCase) LikePattern(ctx context.Context, slug string) (int64, error) {
	likes, err := uc.patternRepo.IncrementLikes(ctx, slug)
	if err != nil {
		return 0, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetMax(ctx, likesCacheKey(slug), likes, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache likes for %s: %v", slug, err)
			if err := uc.cache.Delete(ctx, likesCacheKey(slug)); err != nil {
				uc.logger.Warn("Failed to invalidate cached likes for %s: %v", slug, err)
			}
		}
	}

	uc.metrics.PatternLiked()
	uc.publish(queue.RoutingKeyPatternLiked, PatternEvent{
		Slug:       slug,
		Likes:      likes,
		OccurredAt: uc.now().UTC(),
	})

	return likes, nil
}

// publish sends the event in the background; failures are logged only.
func (uc *patternUseCase) publish(routingKey string, event PatternEvent) {
	if uc.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.publisher.Publish(ctx, routingKey, event); err != nil {
			uc.metrics.PublishFailed()
			uc.logger.Error("Failed to publish %s event for %s: %v", routingKey, event.Slug, err)
		}
	}()
}

func cacheKey(slug string) string {
	return "pattern:" + slug
}

func likesCacheKey(slug string) string {
	return "pattern:" + slug + ":likes"
}
