package dto

type CreateAnnouncementRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=normal urgent event"`
	MediaType string `json:"media_type" validate:"omitempty,oneof=image video none"`
	MediaURL  string `json:"media_url"`
}

type CreateMarketItemRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Price        int64  `json:"price" validate:"gte=0"`
	Description  string `json:"description" validate:"max=2000"`
	ContactPhone string `json:"contact_phone" validate:"max=20"`
	ImageURL     string `json:"image_url"`
}
