package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostPublished = "PUBLISHED"
	PostHidden    = "HIDDEN"
)

type Post struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string `gorm:"size:191;not null;index:idx_posts_author_title"`
	Content   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:16;not null;default:PUBLISHED;index"`
	Likes     int64  `gorm:"not null;default:0"`
	AuthorID  string `gorm:"size:36;not null;index;index:idx_posts_author_title"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PostPublished
	}
	return nil
}
