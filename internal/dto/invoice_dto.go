package dto

type MeterInput struct {
	OldValue int64 `json:"old_value" validate:"gte=0"`
	NewValue int64 `json:"new_value" validate:"gte=0"`
}

// UpsertInvoiceRequest creates or replaces the invoice of a billing period.
// Fees and totals are always computed server-side. A nil ResidentCount means
// the room's current occupancy.
type UpsertInvoiceRequest struct {
	RoomID             string     `json:"room_id" validate:"required,max=20"`
	Month              int        `json:"month" validate:"required,min=1,max=12"`
	Year               int        `json:"year" validate:"required,min=2000,max=2100"`
	RoomPrice          int64      `json:"room_price" validate:"gte=0"`
	Electricity        MeterInput `json:"electricity"`
	ResidentCount      *int       `json:"resident_count" validate:"omitempty,gte=0"`
	RepresentativeName string     `json:"representative_name" validate:"max=255"`
}

type PatchInvoiceRequest struct {
	Status         *string `json:"status" validate:"omitempty,oneof=pending paid"`
	PaymentRequest *bool   `json:"payment_request"`
}

type FeeScheduleResponse struct {
	ElectricityPrice    int64 `json:"electricity_price"`
	WaterPerResident    int64 `json:"water_per_resident"`
	InternetPerResident int64 `json:"internet_per_resident"`
	ServicePerResident  int64 `json:"service_per_resident"`
}

type UpdateFeesRequest struct {
	ElectricityPrice    *int64 `json:"electricity_price" validate:"omitempty,gte=0"`
	WaterPerResident    *int64 `json:"water_per_resident" validate:"omitempty,gte=0"`
	InternetPerResident *int64 `json:"internet_per_resident" validate:"omitempty,gte=0"`
	ServicePerResident  *int64 `json:"service_per_resident" validate:"omitempty,gte=0"`
}
