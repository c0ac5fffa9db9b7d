package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contract list filters.
const (
	ContractFilterAll      = "all"
	ContractFilterActive   = LifecycleActive
	ContractFilterExpiring = LifecycleExpiring
	ContractFilterExpired  = LifecycleExpired
)

type ContractService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	now      func() time.Time
}

func NewContractService(db *gorm.DB, building *repository.BuildingRepository) *ContractService {
	return &ContractService{db: db, building: building, now: time.Now}
}

// WithClock returns a copy of the service that reads the time from now.
func (s *ContractService) WithClock(now func() time.Time) *ContractService {
	cp := *s
	cp.now = now
	return &cp
}

// Create stores a new active contract. The end date is always derived from
// the start date and duration; a client-supplied end date is ignored.
func (s *ContractService) Create(p policy.Principal, req *dto.CreateContractRequest) (*dto.ContractView, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}

	c := models.Contract{Status: models.ContractStatusActive}
	if err := s.apply(&c, contractFields{
		RoomID:       &req.RoomID,
		TenantName:   &req.TenantName,
		TenantPhone:  &req.TenantPhone,
		TenantIDCard: &req.TenantIDCard,
		MonthlyRent:  &req.MonthlyRent,
		Deposit:      &req.Deposit,
		DepositPaid:  &req.DepositPaid,
		StartDate:    &req.StartDate,
		Duration:     &req.Duration,
		Terms:        &req.Terms,
	}); err != nil {
		return nil, err
	}

	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	slog.Info("contract created",
		"contract_id", c.ID.String(),
		"room_id", c.RoomID,
		"end_date", c.EndDate.Format(dateLayout),
	)
	return s.view(c), nil
}

// Update changes the given fields and re-derives the end date.
func (s *ContractService) Update(p policy.Principal, id uuid.UUID, req *dto.UpdateContractRequest) (*dto.ContractView, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	c, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(c, contractFields{
		RoomID:       req.RoomID,
		TenantName:   req.TenantName,
		TenantPhone:  req.TenantPhone,
		TenantIDCard: req.TenantIDCard,
		MonthlyRent:  req.MonthlyRent,
		Deposit:      req.Deposit,
		DepositPaid:  req.DepositPaid,
		StartDate:    req.StartDate,
		Duration:     req.Duration,
		Terms:        req.Terms,
	}); err != nil {
		return nil, err
	}

	if err := s.db.Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	return s.view(*c), nil
}

// Terminate ends a contract early. The record is kept for history.
func (s *ContractService) Terminate(p policy.Principal, id uuid.UUID) (*dto.ContractView, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	c, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if c.Status == models.ContractStatusTerminated {
		return s.view(*c), nil
	}

	now := s.now()
	if err := s.db.Model(c).Updates(map[string]interface{}{
		"status":        models.ContractStatusTerminated,
		"terminated_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to terminate contract: %w", err)
	}
	c.Status = models.ContractStatusTerminated
	c.TerminatedAt = &now

	slog.Info("contract terminated", "contract_id", c.ID.String(), "room_id", c.RoomID)
	return s.view(*c), nil
}

func (s *ContractService) Get(p policy.Principal, id uuid.UUID) (*dto.ContractView, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	c, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.view(*c), nil
}

// List returns the contracts matching filter, soonest end date first, along
// with per-class counts over all contracts.
func (s *ContractService) List(p policy.Principal, filter string) (*dto.ContractListResponse, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	if filter == "" {
		filter = ContractFilterAll
	}
	switch filter {
	case ContractFilterAll, ContractFilterActive, ContractFilterExpiring, ContractFilterExpired:
	default:
		return nil, validationErrorf("unknown filter %q", filter)
	}

	var contracts []models.Contract
	if err := s.db.Order("end_date ASC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	now := s.now()
	resp := &dto.ContractListResponse{Contracts: []dto.ContractView{}, Filter: filter}
	for _, c := range contracts {
		lc := Evaluate(c, now)
		switch lc.Status {
		case LifecycleActive:
			resp.ActiveCount++
		case LifecycleExpiring:
			resp.ExpiringCount++
		case LifecycleExpired:
			resp.ExpiredCount++
		}
		if filter != ContractFilterAll && filter != lc.Status {
			continue
		}
		resp.Contracts = append(resp.Contracts, dto.ContractView{
			Contract:      c,
			Lifecycle:     lc.Status,
			DaysRemaining: lc.DaysRemaining,
		})
	}
	resp.Total = len(resp.Contracts)
	return resp, nil
}

func (s *ContractService) find(id uuid.UUID) (*models.Contract, error) {
	var c models.Contract
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("contract %s", id)
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return &c, nil
}

func (s *ContractService) view(c models.Contract) *dto.ContractView {
	lc := Evaluate(c, s.now())
	return &dto.ContractView{Contract: c, Lifecycle: lc.Status, DaysRemaining: lc.DaysRemaining}
}

// contractFields is the set of editable inputs; nil means unchanged.
type contractFields struct {
	RoomID       *string
	TenantName   *string
	TenantPhone  *string
	TenantIDCard *string
	MonthlyRent  *int64
	Deposit      *int64
	DepositPaid  *bool
	StartDate    *string
	Duration     *int
	Terms        *[]string
}

func (s *ContractService) apply(c *models.Contract, f contractFields) error {
	if f.RoomID != nil {
		snap, err := s.building.Load()
		if err != nil {
			return err
		}
		room, ok := snap.Room(*f.RoomID)
		if !ok {
			return notFoundErrorf("room %s", *f.RoomID)
		}
		if room.Type != models.RoomTypeRoom {
			return validationErrorf("room %s cannot be leased", *f.RoomID)
		}
		c.RoomID = room.ID
	}
	if f.TenantName != nil {
		name := strings.TrimSpace(*f.TenantName)
		if name == "" {
			return validationErrorf("tenant name is required")
		}
		c.TenantName = name
	}
	if f.TenantPhone != nil {
		phone, err := ParsePhone(*f.TenantPhone)
		if err != nil {
			return err
		}
		c.TenantPhone = phone
	}
	if f.TenantIDCard != nil {
		c.TenantIDCard = strings.TrimSpace(*f.TenantIDCard)
	}
	if f.MonthlyRent != nil {
		if *f.MonthlyRent < 0 {
			return validationErrorf("monthly rent must not be negative")
		}
		c.MonthlyRent = *f.MonthlyRent
	}
	if f.Deposit != nil {
		if *f.Deposit < 0 {
			return validationErrorf("deposit must not be negative")
		}
		c.Deposit = *f.Deposit
	}
	if f.DepositPaid != nil {
		c.DepositPaid = *f.DepositPaid
	}
	if f.StartDate != nil {
		start, err := time.Parse(dateLayout, *f.StartDate)
		if err != nil {
			return validationErrorf("start date must be YYYY-MM-DD")
		}
		c.StartDate = start
	}
	if f.Duration != nil {
		if *f.Duration < 1 {
			return validationErrorf("duration must be at least one month")
		}
		c.Duration = *f.Duration
	}
	if f.Terms != nil {
		terms := make([]string, 0, len(*f.Terms))
		for _, t := range *f.Terms {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		c.Terms = datatypes.JSONSlice[string](terms)
	}

	if c.RoomID == "" {
		return validationErrorf("room is required")
	}
	if c.StartDate.IsZero() {
		return validationErrorf("start date is required")
	}
	c.EndDate = DeriveEndDate(c.StartDate, c.Duration)
	return nil
}
