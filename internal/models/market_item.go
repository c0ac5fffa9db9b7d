package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketItem is a listing in the residents' internal marketplace.
type MarketItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Price        int64     `gorm:"not null" json:"price"`
	Description  string    `gorm:"type:text" json:"description"`
	ContactPhone string    `gorm:"size:20" json:"contact_phone"`
	RoomName     string    `gorm:"size:50" json:"room_name"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (m *MarketItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
