package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketService runs the residents' second-hand board.
type MarketService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	filter   *ContentFilter
}

func NewMarketService(db *gorm.DB, building *repository.BuildingRepository, filter *ContentFilter) *MarketService {
	return &MarketService{db: db, building: building, filter: filter}
}

func (s *MarketService) List(p policy.Principal) ([]models.MarketItem, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	var items []models.MarketItem
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list market items: %w", err)
	}
	return items, nil
}

// Create posts a listing. The room shown on it is looked up from the
// poster's residency; contact phone defaults to the poster's own.
func (s *MarketService) Create(p policy.Principal, req *dto.CreateMarketItemRequest) (*models.MarketItem, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationErrorf("title is required")
	}
	if req.Price < 0 {
		return nil, validationErrorf("price must not be negative")
	}
	description := strings.TrimSpace(req.Description)
	if err := s.filter.Check(title, description); err != nil {
		return nil, err
	}

	contact := p.Phone
	if strings.TrimSpace(req.ContactPhone) != "" {
		parsed, err := ParsePhone(req.ContactPhone)
		if err != nil {
			return nil, err
		}
		contact = parsed
	}

	room, _, ok, err := roomOfPhone(s.building, p.Phone)
	if err != nil {
		return nil, err
	}
	roomName := ""
	if ok {
		roomName = room.Number
	}

	item := models.MarketItem{
		Title:        title,
		Price:        req.Price,
		Description:  description,
		ContactPhone: contact,
		RoomName:     roomName,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		CreatedBy:    p.AccountID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create market item: %w", err)
	}
	return &item, nil
}

// Delete removes a listing. Only its poster or an admin may do so.
func (s *MarketService) Delete(p policy.Principal, id uuid.UUID) error {
	var item models.MarketItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErrorf("market item %s", id)
		}
		return fmt.Errorf("failed to find market item: %w", err)
	}
	if err := policy.AdminOrCreator(p, item.CreatedBy).Err(); err != nil {
		return err
	}
	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete market item: %w", err)
	}
	return nil
}
