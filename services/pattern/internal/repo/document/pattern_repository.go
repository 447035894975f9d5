package document

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const CollectionName = "patterns"

type patternRepository struct {
	coll *mongo.Collection

	indexMu sync.Mutex
	indexed bool
}

func NewPatternRepository(db *mongo.Database) repo.PatternRepository {
	return &patternRepository{coll: db.Collection(CollectionName)}
}

// createIndexes creates the unique slug index and the upload-date index
// used to order search results.
func createIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "dateUploaded", Value: -1}},
			Options: options.Index().SetName("date_uploaded_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ensureIndexes creates the indexes once per repository. A failed attempt is
// retried on the next call, so a store that was down at startup still gets
// its unique slug index before the first insert.
func (r *patternRepository) ensureIndexes(ctx context.Context) error {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	if r.indexed {
		return nil
	}
	if err := createIndexes(ctx, r.coll); err != nil {
		return err
	}
	r.indexed = true
	return nil
}

func (r *patternRepository) Create(ctx context.Context, pattern *entity.Pattern) error {
	if err := r.ensureIndexes(ctx); err != nil {
		return err
	}

	doc := ToPatternDocument(pattern)
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		pattern.ID = id.Hex()
	}
	return nil
}

func (r *patternRepository) GetBySlug(ctx context.Context, slug string) (*entity.Pattern, error) {
	var doc PatternDocument
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrPatternNotFound
		}
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	return ToPatternEntity(&doc), nil
}

func (r *patternRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *patternRepository) Search(ctx context.Context, query string) ([]*entity.Pattern, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"patternName": pattern},
		bson.M{"authorName": pattern},
		bson.M{"description": pattern},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "dateUploaded", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search patterns: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []PatternDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode patterns: %w", err)
	}

	patterns := make([]*entity.Pattern, len(docs))
	for i := range docs {
		patterns[i] = ToPatternEntity(&docs[i])
	}
	return patterns, nil
}

func (r *patternRepository) IncrementLikes(ctx context.Context, slug string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var doc PatternDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"slug": slug}, bson.M{"$inc": bson.M{"likes": 1}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, entity.ErrPatternNotFound
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return doc.Likes, nil
}

func (r *patternRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
