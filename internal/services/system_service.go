package services

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"gorm.io/gorm"
)

// SystemService performs building-wide maintenance operations.
type SystemService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	accounts *repository.AccountRepository
}

func NewSystemService(db *gorm.DB, building *repository.BuildingRepository, accounts *repository.AccountRepository) *SystemService {
	return &SystemService{db: db, building: building, accounts: accounts}
}

// Reset wipes residents and all building activity, and every account except
// the acting admin's. The room layout, fee schedule and system logs stay.
func (s *SystemService) Reset(p policy.Principal) error {
	if err := policy.RequireAdmin(p); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.building.WithTx(tx).ClearResidents(); err != nil {
			return err
		}
		for _, model := range []interface{}{
			&models.Invoice{},
			&models.Contract{},
			&models.MaintenanceRequest{},
			&models.Announcement{},
			&models.MarketItem{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}
		return s.accounts.WithTx(tx).DeleteAllExcept(p.AccountID)
	})
	if err != nil {
		return err
	}

	slog.Warn("system reset", "account_id", p.AccountID.String())
	return nil
}
