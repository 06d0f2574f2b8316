package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string `gorm:"primaryKey;size:36"`
	Content   string `gorm:"type:text;not null"`
	AuthorID  string `gorm:"size:36;not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	PostID    string `gorm:"size:36;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
