package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatternModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	PatternURL   string    `gorm:"type:varchar(2048);not null"`
	PatternName  string    `gorm:"type:varchar(255);not null"`
	AuthorName   string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text;not null"`
	Slug         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ThumbnailURL string    `gorm:"type:varchar(2048)"`
	DateUploaded time.Time `gorm:"not null;index"`
	Likes        int64     `gorm:"not null;default:0"`
}

func (PatternModel) TableName() string {
	return "patterns"
}

func (p *PatternModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
