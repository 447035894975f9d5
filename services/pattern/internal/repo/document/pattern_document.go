package document

import (
	"time"

	"pattern-share/services/pattern/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PatternDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	PatternURL   string             `bson:"patternUrl"`
	PatternName  string             `bson:"patternName"`
	AuthorName   string             `bson:"authorName"`
	Description  string             `bson:"description"`
	Slug         string             `bson:"slug"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty"`
	DateUploaded time.Time          `bson:"dateUploaded"`
	Likes        int64              `bson:"likes"`
}

func ToPatternEntity(d *PatternDocument) *entity.Pattern {
	if d == nil {
		return nil
	}

	pattern := &entity.Pattern{
		PatternURL:   d.PatternURL,
		PatternName:  d.PatternName,
		AuthorName:   d.AuthorName,
		Description:  d.Description,
		Slug:         d.Slug,
		ThumbnailURL: d.ThumbnailURL,
		DateUploaded: d.DateUploaded,
		Likes:        d.Likes,
	}
	if !d.ID.IsZero() {
		pattern.ID = d.ID.Hex()
	}
	return pattern
}

func ToPatternDocument(e *entity.Pattern) *PatternDocument {
	if e == nil {
		return nil
	}

	doc := &PatternDocument{
		PatternURL:   e.PatternURL,
		PatternName:  e.PatternName,
		AuthorName:   e.AuthorName,
		Description:  e.Description,
		Slug:         e.Slug,
		ThumbnailURL: e.ThumbnailURL,
		DateUploaded: e.DateUploaded,
		Likes:        e.Likes,
	}
	if id, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = id
	}
	return doc
}
