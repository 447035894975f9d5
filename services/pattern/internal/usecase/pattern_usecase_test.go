package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"pattern-share/pkg/cache"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/moderation"
	"pattern-share/pkg/queue"
	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Create(ctx context.Context, pattern *entity.Pattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) GetBySlug(ctx context.Context, slug string) (*entity.Pattern, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pattern), args.Error(1)
}

func (m *MockPatternRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatternRepository) Search(ctx context.Context, query string) ([]*entity.Pattern, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Pattern), args.Error(1)
}

func (m *MockPatternRepository) IncrementLikes(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatternRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ repo.PatternRepository = (*MockPatternRepository)(nil)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	switch cached := args.Get(0).(type) {
	case *entity.Pattern:
		*dest.(*entity.Pattern) = *cached
		return true, args.Error(1)
	case int64:
		*dest.(*int64) = cached
		return true, args.Error(1)
	}
	return false, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) SetMax(ctx context.Context, key string, value int64, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

var _ cache.Cache = (*MockCache)(nil)

// memoryCache is a map-backed cache.Cache with the same SetMax semantics as Redis.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = data
	return nil
}

func (c *memoryCache) SetMax(ctx context.Context, key string, value int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.values[key]; ok {
		if current, err := strconv.ParseInt(string(data), 10, 64); err == nil && current >= value {
			return nil
		}
	}
	c.values[key] = []byte(strconv.FormatInt(value, 10))
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

var _ cache.Cache = (*memoryCache)(nil)

type publishedEvent struct {
	routingKey string
	event      PatternEvent
}

// MockPublisher forwards every publish to a channel so tests can wait on it.
type MockPublisher struct {
	events chan publishedEvent
	err    error
}

func newMockPublisher(err error) *MockPublisher {
	return &MockPublisher{events: make(chan publishedEvent, 4), err: err}
}

func (p *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	p.events <- publishedEvent{routingKey: routingKey, event: payload.(PatternEvent)}
	return p.err
}

func (p *MockPublisher) wait(t *testing.T) publishedEvent {
	t.Helper()
	select {
	case e := <-p.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return publishedEvent{}
	}
}

var fixedNow = time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

func newTestUseCase(mockRepo *MockPatternRepository, opts ...Option) PatternUseCase {
	filter := moderation.NewFilter([]string{"darn", "heck"})
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewPatternUseCase(mockRepo, filter, logger.New(), opts...)
}

func validInput() entity.PatternInput {
	return entity.PatternInput{
		PatternURL:   "https://cdn.example.com/patterns/granny-square.pdf",
		PatternName:  "Granny Square",
		AuthorName:   "Ada",
		Description:  "A classic crochet square",
		Slug:         "granny-square",
		ThumbnailURL: "https://cdn.example.com/thumbs/granny-square.png",
	}
}

func TestUploadPattern_Success(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	publisher := newMockPublisher(nil)
	uc := newTestUseCase(mockRepo, WithPublisher(publisher))
	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "granny-square").Return(false, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Pattern) bool {
		return p.Slug == "granny-square" && p.Likes == 0 && p.DateUploaded.Equal(fixedNow)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Pattern).ID = "pattern-1"
	}).Return(nil)

	pattern, err := uc.UploadPattern(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "pattern-1", pattern.ID)
	assert.Equal(t, int64(0), pattern.Likes)

	event := publisher.wait(t)
	assert.Equal(t, queue.RoutingKeyPatternUploaded, event.routingKey)
	assert.Equal(t, "granny-square", event.event.Slug)

	mockRepo.AssertExpectations(t)
}

func TestUploadPattern_MissingField(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)

	input := validInput()
	input.Description = ""

	pattern, err := uc.UploadPattern(context.Background(), input)

	assert.Nil(t, pattern)
	assert.ErrorIs(t, err, entity.ErrMissingField)
	mockRepo.AssertNotCalled(t, "ExistsBySlug", mock.Anything, mock.Anything)
}

func TestUploadPattern_DuplicateSlug(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "granny-square").Return(true, nil)

	pattern, err := uc.UploadPattern(ctx, validInput())

	assert.Nil(t, pattern)
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadPattern_BlockedTerm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *entity.PatternInput)
		field  string
	}{
		{"slug", func(in *entity.PatternInput) { in.Slug = "darn-hat" }, "slug"},
		{"pattern name", func(in *entity.PatternInput) { in.PatternName = "Heck Yes Hat" }, "patternName"},
		{"author name", func(in *entity.PatternInput) { in.AuthorName = "D.A.R.N" }, "authorName"},
		{"description", func(in *entity.PatternInput) { in.Description = "What the heck!" }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPatternRepository)
			uc := newTestUseCase(mockRepo)
			ctx := context.Background()

			input := validInput()
			tt.mutate(&input)
			mockRepo.On("ExistsBySlug", ctx, input.Slug).Return(false, nil)

			pattern, err := uc.UploadPattern(ctx, input)

			assert.Nil(t, pattern)
			assert.ErrorIs(t, err, entity.ErrBlockedTerm)
			assert.Contains(t, err.Error(), tt.field)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadPattern_InvalidFileTypes(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()
	mockRepo.On("ExistsBySlug", ctx, "granny-square").Return(false, nil)

	input := validInput()
	input.PatternURL = "https://cdn.example.com/patterns/granny-square.zip"
	_, err := uc.UploadPattern(ctx, input)
	assert.ErrorIs(t, err, entity.ErrInvalidPatternFile)

	input = validInput()
	input.ThumbnailURL = "https://cdn.example.com/thumbs/granny-square.gif"
	_, err = uc.UploadPattern(ctx, input)
	assert.ErrorIs(t, err, entity.ErrInvalidThumbnail)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadPattern_LostRace(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "granny-square").Return(false, nil)
	mockRepo.On("Create", ctx, mock.Anything).Return(entity.ErrDuplicateSlug)

	_, err := uc.UploadPattern(ctx, validInput())
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
}

func TestUploadPattern_StoreError(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("ExistsBySlug", ctx, "granny-square").Return(false, errors.New("connection refused"))

	_, err := uc.UploadPattern(ctx, validInput())
	assert.Error(t, err)
	assert.False(t, entity.IsValidationError(err))
}

func TestGetPattern(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()
	expected := &entity.Pattern{Slug: "hat", PatternName: "Hat"}

	mockRepo.On("GetBySlug", ctx, "hat").Return(expected, nil)
	mockRepo.On("GetBySlug", ctx, "missing").Return(nil, entity.ErrPatternNotFound)

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, expected, pattern)

	_, err = uc.GetPattern(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrPatternNotFound)
}

func TestGetPattern_CacheHit(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()

	mockCache.On("Get", ctx, "pattern:hat", mock.Anything).Return(&entity.Pattern{Slug: "hat", Likes: 3}, nil)
	mockCache.On("Get", ctx, "pattern:hat:likes", mock.Anything).Return(int64(7), nil)

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, "hat", pattern.Slug)
	assert.Equal(t, int64(7), pattern.Likes)

	mockRepo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestGetPattern_CacheMissFillsCache(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()
	stored := &entity.Pattern{Slug: "hat", Likes: 2}

	mockCache.On("Get", ctx, "pattern:hat", mock.Anything).Return(nil, nil)
	mockRepo.On("GetBySlug", ctx, "hat").Return(stored, nil)
	mockCache.On("Set", ctx, "pattern:hat", stored, time.Minute).Return(nil)
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(2), time.Minute).Return(nil)

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, stored, pattern)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetPattern_CacheErrorFallsBackToStore(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()
	stored := &entity.Pattern{Slug: "hat"}

	mockCache.On("Get", ctx, "pattern:hat", mock.Anything).Return(nil, errors.New("redis down"))
	mockRepo.On("GetBySlug", ctx, "hat").Return(stored, nil)
	mockCache.On("Set", ctx, "pattern:hat", stored, time.Minute).Return(errors.New("redis down"))
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(0), time.Minute).Return(errors.New("redis down"))

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, stored, pattern)
}

func TestGetPattern_CachedRecordWithoutLikesReadsStore(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()
	stored := &entity.Pattern{Slug: "hat", Likes: 4}

	mockCache.On("Get", ctx, "pattern:hat", mock.Anything).Return(&entity.Pattern{Slug: "hat"}, nil)
	mockCache.On("Get", ctx, "pattern:hat:likes", mock.Anything).Return(nil, nil)
	mockRepo.On("GetBySlug", ctx, "hat").Return(stored, nil)
	mockCache.On("Set", ctx, "pattern:hat", stored, time.Minute).Return(nil)
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(4), time.Minute).Return(nil)

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, int64(4), pattern.Likes)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetPattern_SlowReadDoesNotHideLike(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo, WithCache(newMemoryCache(), time.Minute))
	ctx := context.Background()

	reading := make(chan struct{})
	release := make(chan struct{})
	mockRepo.On("GetBySlug", ctx, "hat").Run(func(mock.Arguments) {
		close(reading)
		<-release
	}).Return(&entity.Pattern{Slug: "hat", Likes: 0}, nil).Once()
	mockRepo.On("IncrementLikes", ctx, "hat").Return(int64(1), nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		pattern, err := uc.GetPattern(ctx, "hat")
		if assert.NoError(t, err) {
			assert.Equal(t, int64(0), pattern.Likes)
		}
	}()

	<-reading
	likes, err := uc.LikePattern(ctx, "hat")
	require.NoError(t, err)
	require.Equal(t, int64(1), likes)

	close(release)
	<-done

	pattern, err := uc.GetPattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pattern.Likes)

	mockRepo.AssertNumberOfCalls(t, "GetBySlug", 1)
}

func TestSearchPatterns(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)
	ctx := context.Background()
	results := []*entity.Pattern{{Slug: "shawl"}, {Slug: "hat"}}

	mockRepo.On("Search", ctx, "hat").Return(results, nil)

	patterns, err := uc.SearchPatterns(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, results, patterns)
}

func TestSearchPatterns_EmptyQuery(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	uc := newTestUseCase(mockRepo)

	patterns, err := uc.SearchPatterns(context.Background(), "")

	assert.Nil(t, patterns)
	assert.ErrorIs(t, err, entity.ErrEmptyQuery)
	mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestLikePattern(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	publisher := newMockPublisher(errors.New("broker unavailable"))
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute), WithPublisher(publisher))
	ctx := context.Background()

	mockRepo.On("IncrementLikes", ctx, "hat").Return(int64(1), nil).Once()
	mockRepo.On("IncrementLikes", ctx, "hat").Return(int64(2), nil).Once()
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(1), time.Minute).Return(nil)
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(2), time.Minute).Return(nil)

	likes, err := uc.LikePattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	likes, err = uc.LikePattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	first := publisher.wait(t)
	second := publisher.wait(t)
	assert.Equal(t, queue.RoutingKeyPatternLiked, first.routingKey)
	assert.ElementsMatch(t, []int64{1, 2}, []int64{first.event.Likes, second.event.Likes})

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLikePattern_CacheWriteFailureDropsCount(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()

	mockRepo.On("IncrementLikes", ctx, "hat").Return(int64(3), nil)
	mockCache.On("SetMax", ctx, "pattern:hat:likes", int64(3), time.Minute).Return(errors.New("timeout"))
	mockCache.On("Delete", ctx, []string{"pattern:hat:likes"}).Return(nil)

	likes, err := uc.LikePattern(ctx, "hat")
	require.NoError(t, err)
	assert.Equal(t, int64(3), likes)

	mockCache.AssertExpectations(t)
}

func TestLikePattern_NotFound(t *testing.T) {
	mockRepo := new(MockPatternRepository)
	mockCache := new(MockCache)
	uc := newTestUseCase(mockRepo, WithCache(mockCache, time.Minute))
	ctx := context.Background()

	mockRepo.On("IncrementLikes", ctx, "missing").Return(int64(0), entity.ErrPatternNotFound)

	_, err := uc.LikePattern(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrPatternNotFound)
	mockCache.AssertNotCalled(t, "SetMax", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
