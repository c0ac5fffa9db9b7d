package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// MeterReading is the electricity sub-record of an invoice. Price is the unit
// price snapshot at creation time.
type MeterReading struct {
	OldValue int64 `json:"old_value"`
	NewValue int64 `json:"new_value"`
	Price    int64 `json:"price"`
}

type Invoice struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID             string       `gorm:"size:20;not null;uniqueIndex:idx_invoice_period,priority:1" json:"room_id"`
	Month              int          `gorm:"not null;uniqueIndex:idx_invoice_period,priority:2" json:"month"`
	Year               int          `gorm:"not null;uniqueIndex:idx_invoice_period,priority:3" json:"year"`
	RepresentativeName string       `gorm:"size:255" json:"representative_name"`
	ResidentCount      int          `gorm:"not null;default:0" json:"resident_count"`
	RoomPrice          int64        `gorm:"not null;default:0" json:"room_price"`
	Electricity        MeterReading `gorm:"embedded;embeddedPrefix:electricity_" json:"electricity"`
	ElectricityCharge  int64        `gorm:"not null;default:0" json:"electricity_charge"`
	WaterFee           int64        `gorm:"not null;default:0" json:"water_fee"`
	InternetFee        int64        `gorm:"not null;default:0" json:"internet_fee"`
	ServiceFee         int64        `gorm:"not null;default:0" json:"service_fee"`
	TotalAmount        int64        `gorm:"not null" json:"total_amount"`
	Status             string       `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentRequest     bool         `gorm:"not null;default:false" json:"payment_request"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
