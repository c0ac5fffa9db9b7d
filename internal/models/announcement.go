package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"size:20;not null;default:'normal'" json:"type"`     // normal, urgent, event
	MediaType string    `gorm:"size:20;not null;default:'none'" json:"media_type"` // image, video, none
	MediaURL  string    `gorm:"type:text" json:"media_url"`
	CreatedBy string    `gorm:"size:255;default:'Admin'" json:"created_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
