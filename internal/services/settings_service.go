package services

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingElectricityPrice = "price_electricity"
	SettingWaterFee         = "fee_water"
	SettingInternetFee      = "fee_internet"
	SettingServiceFee       = "fee_service"
)

// SettingsService stores the current fee schedule as typed key/value rows.
// Invoices copy the rates at creation time, so changes never touch history.
type SettingsService struct {
	db       *gorm.DB
	defaults FeeSchedule
}

func NewSettingsService(db *gorm.DB, defaults FeeSchedule) *SettingsService {
	return &SettingsService{db: db, defaults: defaults}
}

// SeedDefaults inserts the default rates for keys that do not exist yet.
func (s *SettingsService) SeedDefaults() error {
	for key, value := range feeValues(s.defaults) {
		row := models.Setting{Key: key, Value: strconv.FormatInt(value, 10), Type: "int"}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}

// FeeSchedule returns the current rates. Missing or unparsable rows fall back
// to the configured defaults.
func (s *SettingsService) FeeSchedule() (FeeSchedule, error) {
	var rows []models.Setting
	if err := s.db.Where(`"key" IN ?`, feeKeys()).Find(&rows).Error; err != nil {
		return FeeSchedule{}, fmt.Errorf("failed to load fee schedule: %w", err)
	}

	fees := s.defaults
	for _, row := range rows {
		n, err := strconv.ParseInt(row.Value, 10, 64)
		if err != nil {
			slog.Warn("ignoring malformed fee setting", "key", row.Key, "value", row.Value)
			continue
		}
		switch row.Key {
		case SettingElectricityPrice:
			fees.ElectricityPrice = n
		case SettingWaterFee:
			fees.WaterPerResident = n
		case SettingInternetFee:
			fees.InternetPerResident = n
		case SettingServiceFee:
			fees.ServicePerResident = n
		}
	}
	return fees, nil
}

// UpdateFees changes the rates given in req. Admin only.
func (s *SettingsService) UpdateFees(p policy.Principal, req *dto.UpdateFeesRequest) (FeeSchedule, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return FeeSchedule{}, err
	}

	updates := map[string]*int64{
		SettingElectricityPrice: req.ElectricityPrice,
		SettingWaterFee:         req.WaterPerResident,
		SettingInternetFee:      req.InternetPerResident,
		SettingServiceFee:       req.ServicePerResident,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range updates {
			if value == nil {
				continue
			}
			if *value < 0 {
				return validationErrorf("%s must not be negative", key)
			}
			row := models.Setting{Key: key, Value: strconv.FormatInt(*value, 10), Type: "int"}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return FeeSchedule{}, err
	}

	slog.Info("fee schedule updated", "account_id", p.AccountID.String())
	return s.FeeSchedule()
}

func feeKeys() []string {
	return []string{SettingElectricityPrice, SettingWaterFee, SettingInternetFee, SettingServiceFee}
}

func feeValues(f FeeSchedule) map[string]int64 {
	return map[string]int64{
		SettingElectricityPrice: f.ElectricityPrice,
		SettingWaterFee:         f.WaterPerResident,
		SettingInternetFee:      f.InternetPerResident,
		SettingServiceFee:       f.ServicePerResident,
	}
}

// ToDTO renders the schedule for API responses.
func (f FeeSchedule) ToDTO() dto.FeeScheduleResponse {
	return dto.FeeScheduleResponse{
		ElectricityPrice:    f.ElectricityPrice,
		WaterPerResident:    f.WaterPerResident,
		InternetPerResident: f.InternetPerResident,
		ServicePerResident:  f.ServicePerResident,
	}
}
