package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ContractStatusActive     = "active"
	ContractStatusTerminated = "terminated"
)

// Contract is a lease tied to a room. EndDate is derived from StartDate and
// Duration and is never taken from client input.
type Contract struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID       string                      `gorm:"size:20;not null;index" json:"room_id"`
	TenantName   string                      `gorm:"size:255;not null" json:"tenant_name"`
	TenantPhone  string                      `gorm:"size:20;not null" json:"tenant_phone"`
	TenantIDCard string                      `gorm:"size:50" json:"tenant_id_card"`
	MonthlyRent  int64                       `gorm:"not null;default:0" json:"monthly_rent"`
	Deposit      int64                       `gorm:"not null;default:0" json:"deposit"`
	DepositPaid  bool                        `gorm:"not null;default:false" json:"deposit_paid"`
	StartDate    time.Time                   `gorm:"not null" json:"start_date"`
	Duration     int                         `gorm:"not null" json:"duration"`
	EndDate      time.Time                   `gorm:"not null;index" json:"end_date"`
	Terms        datatypes.JSONSlice[string] `json:"terms"`
	Status       string                      `gorm:"size:20;not null;default:'active';index" json:"status"`
	TerminatedAt *time.Time                  `json:"terminated_at,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
