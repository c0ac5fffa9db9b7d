package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in-progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"

	RequestTypeMaintenance = "maintenance"
	RequestTypeFeedback    = "feedback"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type MaintenanceRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      string    `gorm:"size:20;not null;index" json:"room_id"`
	RoomName    string    `gorm:"size:50" json:"room_name"`
	SenderName  string    `gorm:"size:255;not null" json:"sender_name"`
	Phone       string    `gorm:"size:20;not null;index" json:"phone"`
	Type        string    `gorm:"size:20;not null;default:'maintenance'" json:"type"`
	Priority    string    `gorm:"size:10;not null;default:'medium'" json:"priority"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Note        string    `gorm:"type:text" json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
