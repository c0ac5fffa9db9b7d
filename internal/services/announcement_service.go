package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// announcementFeedSize is how many announcements the board shows.
const announcementFeedSize = 10

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// List returns the latest announcements, newest first.
func (s *AnnouncementService) List(p policy.Principal) ([]models.Announcement, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	var items []models.Announcement
	if err := s.db.Order("created_at DESC").Limit(announcementFeedSize).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (s *AnnouncementService) Create(p policy.Principal, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, validationErrorf("title and content are required")
	}

	kind := orDefault(req.Type, "normal")
	switch kind {
	case "normal", "urgent", "event":
	default:
		return nil, validationErrorf("invalid announcement type %q", kind)
	}
	mediaType := orDefault(req.MediaType, "none")
	mediaURL := strings.TrimSpace(req.MediaURL)
	switch mediaType {
	case "none":
		mediaURL = ""
	case "image", "video":
		if mediaURL == "" {
			return nil, validationErrorf("media url is required for %s", mediaType)
		}
	default:
		return nil, validationErrorf("invalid media type %q", mediaType)
	}

	a := models.Announcement{
		Title:     title,
		Content:   content,
		Type:      kind,
		MediaType: mediaType,
		MediaURL:  mediaURL,
		CreatedBy: p.Name,
	}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	slog.Info("announcement posted", "announcement_id", a.ID.String(), "type", a.Type)
	return &a, nil
}

func (s *AnnouncementService) Delete(p policy.Principal, id uuid.UUID) error {
	if err := policy.RequireAdmin(p); err != nil {
		return err
	}
	result := s.db.Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("announcement %s", id)
	}
	return nil
}
