package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maintenanceTransitions lists the statuses reachable from each status.
var maintenanceTransitions = map[string][]string{
	models.MaintenancePending:    {models.MaintenanceInProgress, models.MaintenanceCancelled},
	models.MaintenanceInProgress: {models.MaintenanceCompleted},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range maintenanceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type MaintenanceService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
}

func NewMaintenanceService(db *gorm.DB, building *repository.BuildingRepository) *MaintenanceService {
	return &MaintenanceService{db: db, building: building}
}

// Create files a request. The sender's phone always comes from the session.
// Residents file for the room they live in; admins may name any room.
func (s *MaintenanceService) Create(p policy.Principal, req *dto.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, validationErrorf("title and description are required")
	}

	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}
	var room *models.Room
	if p.IsAdmin() && req.RoomID != "" {
		r, ok := snap.Room(req.RoomID)
		if !ok {
			return nil, notFoundErrorf("room %s", req.RoomID)
		}
		room = r
	} else {
		r, _, ok := residentByPhone(snap, p.Phone)
		if !ok {
			return nil, validationErrorf("account is not assigned to a room")
		}
		room = r
	}

	sender := p.Name
	if p.IsAdmin() && strings.TrimSpace(req.SenderName) != "" {
		sender = strings.TrimSpace(req.SenderName)
	}
	kind := orDefault(req.Type, models.RequestTypeMaintenance)
	if kind != models.RequestTypeMaintenance && kind != models.RequestTypeFeedback {
		return nil, validationErrorf("invalid request type %q", kind)
	}
	priority := orDefault(req.Priority, models.PriorityMedium)
	if priority != models.PriorityLow && priority != models.PriorityMedium && priority != models.PriorityHigh {
		return nil, validationErrorf("invalid priority %q", priority)
	}

	m := models.MaintenanceRequest{
		RoomID:      room.ID,
		RoomName:    room.Number,
		SenderName:  sender,
		Phone:       p.Phone,
		Type:        kind,
		Priority:    priority,
		Title:       title,
		Description: description,
		Status:      models.MaintenancePending,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	slog.Info("maintenance request created", "request_id", m.ID.String(), "room_id", m.RoomID, "type", m.Type)
	return &m, nil
}

// List returns every request for admins and the caller's own otherwise.
func (s *MaintenanceService) List(p policy.Principal) ([]models.MaintenanceRequest, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	query := s.db.Model(&models.MaintenanceRequest{})
	if !p.IsAdmin() {
		query = query.Where("phone = ?", p.Phone)
	}
	var requests []models.MaintenanceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return requests, nil
}

// Update moves a request through its lifecycle. Admins drive progress and
// may edit details; the submitter may only cancel a pending request.
func (s *MaintenanceService) Update(p policy.Principal, id uuid.UUID, req *dto.UpdateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	m, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireAdminOrOwner(p, m.Phone); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if !p.IsAdmin() {
		if req.Priority != nil || req.Note != nil || req.Title != nil || req.Description != nil ||
			req.Status == nil || *req.Status != models.MaintenanceCancelled {
			return nil, fmt.Errorf("%w: you can only cancel your request", ErrForbidden)
		}
	}

	if req.Status != nil && *req.Status != m.Status {
		if !CanTransition(m.Status, *req.Status) {
			return nil, conflictErrorf("cannot move request from %s to %s", m.Status, *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		switch *req.Priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
			updates["priority"] = *req.Priority
		default:
			return nil, validationErrorf("invalid priority %q", *req.Priority)
		}
	}
	if req.Note != nil {
		updates["note"] = strings.TrimSpace(*req.Note)
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validationErrorf("title must not be empty")
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, validationErrorf("description must not be empty")
		}
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) == 0 {
		return m, nil
	}

	if err := s.db.Model(m).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update maintenance request: %w", err)
	}
	if status, ok := updates["status"]; ok {
		slog.Info("maintenance request status changed", "request_id", m.ID.String(), "from", m.Status, "to", status)
	}
	return s.find(id)
}

func (s *MaintenanceService) Delete(p policy.Principal, id uuid.UUID) error {
	if err := policy.RequireAdmin(p); err != nil {
		return err
	}
	result := s.db.Where("id = ?", id).Delete(&models.MaintenanceRequest{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete maintenance request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("maintenance request %s", id)
	}
	return nil
}

func (s *MaintenanceService) find(id uuid.UUID) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("maintenance request %s", id)
		}
		return nil, fmt.Errorf("failed to find maintenance request: %w", err)
	}
	return &m, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
