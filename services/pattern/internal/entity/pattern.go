package entity

import (
	"errors"
	"fmt"
	"time"

	"pattern-share/pkg/filetype"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Pattern struct {
	ID           string    `json:"id"`
	PatternURL   string    `json:"patternUrl"`
	PatternName  string    `json:"patternName"`
	AuthorName   string    `json:"authorName"`
	Description  string    `json:"description"`
	Slug         string    `json:"slug"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	DateUploaded time.Time `json:"dateUploaded"`
	Likes        int64     `json:"likes"`
}

// PatternInput carries the client-supplied fields of a new pattern.
type PatternInput struct {
	PatternURL   string `json:"patternUrl"`
	PatternName  string `json:"patternName"`
	AuthorName   string `json:"authorName"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Validate checks that every required field is present.
func (in PatternInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.PatternURL, validation.Required),
		validation.Field(&in.PatternName, validation.Required),
		validation.Field(&in.AuthorName, validation.Required),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Slug, validation.Required),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", ErrMissingField, fieldErrs.Error())
	}
	return err
}

// ModeratedFields returns the free-text fields that must pass moderation,
// keyed by their JSON name.
func (in PatternInput) ModeratedFields() []Field {
	return []Field{
		{Name: "slug", Value: in.Slug},
		{Name: "patternName", Value: in.PatternName},
		{Name: "authorName", Value: in.AuthorName},
		{Name: "description", Value: in.Description},
	}
}

type Field struct {
	Name  string
	Value string
}

// NewPattern validates in and builds a pattern with zero likes uploaded at now.
func NewPattern(in PatternInput, now time.Time) (*Pattern, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := validation.Validate(in.PatternURL, validation.By(fileRule(filetype.IsDocument, ErrInvalidPatternFile))); err != nil {
		return nil, err
	}
	if err := validation.Validate(in.ThumbnailURL, validation.By(fileRule(filetype.IsImage, ErrInvalidThumbnail))); err != nil {
		return nil, err
	}

	return &Pattern{
		PatternURL:   in.PatternURL,
		PatternName:  in.PatternName,
		AuthorName:   in.AuthorName,
		Description:  in.Description,
		Slug:         in.Slug,
		ThumbnailURL: in.ThumbnailURL,
		DateUploaded: now.UTC(),
		Likes:        0,
	}, nil
}

func fileRule(allowed func(string) bool, errInvalid error) validation.RuleFunc {
	return func(value interface{}) error {
		url, _ := value.(string)
		if url == "" {
			return nil
		}
		if !allowed(url) {
			return errInvalid
		}
		return nil
	}
}
