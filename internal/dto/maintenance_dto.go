package dto

type CreateMaintenanceRequest struct {
	RoomID      string `json:"room_id" validate:"max=20"`
	SenderName  string `json:"sender_name" validate:"max=255"`
	Type        string `json:"type" validate:"omitempty,oneof=maintenance feedback"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type UpdateMaintenanceRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Note        *string `json:"note"`
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}
