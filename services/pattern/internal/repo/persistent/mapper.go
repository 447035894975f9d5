package persistent

import (
	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/model"
)

func ToPatternEntity(m *model.PatternModel) *entity.Pattern {
	if m == nil {
		return nil
	}

	return &entity.Pattern{
		ID:           m.ID,
		PatternURL:   m.PatternURL,
		PatternName:  m.PatternName,
		AuthorName:   m.AuthorName,
		Description:  m.Description,
		Slug:         m.Slug,
		ThumbnailURL: m.ThumbnailURL,
		DateUploaded: m.DateUploaded,
		Likes:        m.Likes,
	}
}

func ToPatternModel(e *entity.Pattern) *model.PatternModel {
	if e == nil {
		return nil
	}

	return &model.PatternModel{
		ID:           e.ID,
		PatternURL:   e.PatternURL,
		PatternName:  e.PatternName,
		AuthorName:   e.AuthorName,
		Description:  e.Description,
		Slug:         e.Slug,
		ThumbnailURL: e.ThumbnailURL,
		DateUploaded: e.DateUploaded,
		Likes:        e.Likes,
	}
}
