package dto

import "github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"

// CreateContractRequest is the lease form. EndDate is accepted for display
// round-trips only and is recomputed from StartDate and Duration.
type CreateContractRequest struct {
	RoomID       string   `json:"room_id" validate:"required,max=20"`
	TenantName   string   `json:"tenant_name" validate:"required,max=255"`
	TenantPhone  string   `json:"tenant_phone" validate:"required,max=20"`
	TenantIDCard string   `json:"tenant_id_card" validate:"max=50"`
	MonthlyRent  int64    `json:"monthly_rent" validate:"gte=0"`
	Deposit      int64    `json:"deposit" validate:"gte=0"`
	DepositPaid  bool     `json:"deposit_paid"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	Duration     int      `json:"duration" validate:"required,min=1,max=120"`
	EndDate      string   `json:"end_date"`
	Terms        []string `json:"terms" validate:"dive,max=500"`
}

type UpdateContractRequest struct {
	RoomID       *string   `json:"room_id" validate:"omitempty,max=20"`
	TenantName   *string   `json:"tenant_name" validate:"omitempty,max=255"`
	TenantPhone  *string   `json:"tenant_phone" validate:"omitempty,max=20"`
	TenantIDCard *string   `json:"tenant_id_card" validate:"omitempty,max=50"`
	MonthlyRent  *int64    `json:"monthly_rent" validate:"omitempty,gte=0"`
	Deposit      *int64    `json:"deposit" validate:"omitempty,gte=0"`
	DepositPaid  *bool     `json:"deposit_paid"`
	StartDate    *string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Duration     *int      `json:"duration" validate:"omitempty,min=1,max=120"`
	EndDate      *string   `json:"end_date"`
	Terms        *[]string `json:"terms"`
}

// ContractView is a contract together with its lifecycle badge.
type ContractView struct {
	models.Contract
	Lifecycle     string `json:"lifecycle"`
	DaysRemaining int    `json:"days_remaining"`
}

type ContractListResponse struct {
	Contracts     []ContractView `json:"contracts"`
	Total         int            `json:"total"`
	ActiveCount   int            `json:"active_count"`
	ExpiringCount int            `json:"expiring_count"`
	ExpiredCount  int            `json:"expired_count"`
	Filter        string         `json:"filter"`
}
