package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/model"
	"pattern-share/services/pattern/internal/repo"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolationCode = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type patternRepository struct {
	db *gorm.DB
}

func NewPatternRepository(db *gorm.DB) repo.PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) Create(ctx context.Context, pattern *entity.Pattern) error {
	patternModel := ToPatternModel(pattern)
	if err := r.db.WithContext(ctx).Create(patternModel).Error; err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	*pattern = *ToPatternEntity(patternModel)
	return nil
}

func (r *patternRepository) GetBySlug(ctx context.Context, slug string) (*entity.Pattern, error) {
	var patternModel model.PatternModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&patternModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPatternNotFound
		}
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	return ToPatternEntity(&patternModel), nil
}

func (r *patternRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PatternModel{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *patternRepository) Search(ctx context.Context, query string) ([]*entity.Pattern, error) {
	term := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var patternModels []model.PatternModel
	err := r.db.WithContext(ctx).
		Where(`LOWER(pattern_name) LIKE ? ESCAPE '\'`, term).
		Or(`LOWER(author_name) LIKE ? ESCAPE '\'`, term).
		Or(`LOWER(description) LIKE ? ESCAPE '\'`, term).
		Order("date_uploaded DESC").
		Find(&patternModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search patterns: %w", err)
	}

	patterns := make([]*entity.Pattern, len(patternModels))
	for i := range patternModels {
		patterns[i] = ToPatternEntity(&patternModels[i])
	}
	return patterns, nil
}

func (r *patternRepository) IncrementLikes(ctx context.Context, slug string) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PatternModel{}).
			Where("slug = ?", slug).
			UpdateColumn("likes", clause.Expr{SQL: "likes + ?", Vars: []interface{}{1}})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrPatternNotFound
		}

		// The row stays locked until commit, so this reads our own increment.
		var updated model.PatternModel
		if err := tx.Select("likes").Where("slug = ?", slug).First(&updated).Error; err != nil {
			return err
		}
		likes = updated.Likes
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrPatternNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return likes, nil
}

func (r *patternRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
