package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns rewritten when an invoice period is submitted again. Status and
// payment request survive a re-submission.
var invoiceBillingColumns = []string{
	"representative_name",
	"resident_count",
	"room_price",
	"electricity_old_value",
	"electricity_new_value",
	"electricity_price",
	"electricity_charge",
	"water_fee",
	"internet_fee",
	"service_fee",
	"total_amount",
	"updated_at",
}

type InvoiceService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	settings *SettingsService
}

func NewInvoiceService(db *gorm.DB, building *repository.BuildingRepository, settings *SettingsService) *InvoiceService {
	return &InvoiceService{db: db, building: building, settings: settings}
}

// Upsert prices and stores the invoice of (room, month, year), replacing the
// billing fields of an existing one. Fees are priced from the current
// schedule and copied onto the invoice.
func (s *InvoiceService) Upsert(p policy.Principal, req *dto.UpsertInvoiceRequest) (*models.Invoice, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, validationErrorf("month must be between 1 and 12")
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, validationErrorf("year %d is out of range", req.Year)
	}
	if req.RoomPrice < 0 {
		return nil, validationErrorf("room price must not be negative")
	}
	if req.Electricity.OldValue < 0 || req.Electricity.NewValue < 0 {
		return nil, validationErrorf("meter readings must not be negative")
	}
	if req.ResidentCount != nil && *req.ResidentCount < 0 {
		return nil, validationErrorf("resident count must not be negative")
	}

	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}
	room, ok := snap.Room(req.RoomID)
	if !ok {
		return nil, notFoundErrorf("room %s", req.RoomID)
	}
	if room.Type != models.RoomTypeRoom {
		return nil, validationErrorf("room %s is not billable", req.RoomID)
	}

	residentCount := len(room.Residents)
	if req.ResidentCount != nil {
		residentCount = *req.ResidentCount
	}
	representative := req.RepresentativeName
	if representative == "" && len(room.Residents) > 0 {
		representative = room.Residents[0].Name
	}

	fees, err := s.settings.FeeSchedule()
	if err != nil {
		return nil, err
	}
	b := ComputeInvoiceTotal(fees, residentCount, req.RoomPrice, req.Electricity.OldValue, req.Electricity.NewValue)

	inv := models.Invoice{
		RoomID:             req.RoomID,
		Month:              req.Month,
		Year:               req.Year,
		RepresentativeName: representative,
		ResidentCount:      residentCount,
		RoomPrice:          req.RoomPrice,
		Electricity: models.MeterReading{
			OldValue: req.Electricity.OldValue,
			NewValue: req.Electricity.NewValue,
			Price:    fees.ElectricityPrice,
		},
		ElectricityCharge: b.ElectricityCharge,
		WaterFee:          b.WaterFee,
		InternetFee:       b.InternetFee,
		ServiceFee:        b.ServiceFee,
		TotalAmount:       b.Total,
		Status:            models.InvoiceStatusPending,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns(invoiceBillingColumns),
	}).Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	var stored models.Invoice
	if err := s.db.Where("room_id = ? AND month = ? AND year = ?", req.RoomID, req.Month, req.Year).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}

	slog.Info("invoice saved",
		"invoice_id", stored.ID.String(),
		"room_id", stored.RoomID,
		"period", fmt.Sprintf("%02d/%d", stored.Month, stored.Year),
		"total", stored.TotalAmount,
	)
	return &stored, nil
}

// SetStatus applies a status or payment-request patch. Admins may change both;
// marking an invoice paid clears its payment request. Residents may only flag
// a payment request on their own room's invoices.
func (s *InvoiceService) SetStatus(p policy.Principal, id uuid.UUID, req *dto.PatchInvoiceRequest) (*models.Invoice, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	if req.Status == nil && req.PaymentRequest == nil {
		return nil, validationErrorf("nothing to update")
	}

	inv, err := s.find(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if p.IsAdmin() {
		status := inv.Status
		if req.Status != nil {
			if *req.Status != models.InvoiceStatusPending && *req.Status != models.InvoiceStatusPaid {
				return nil, validationErrorf("invalid status %q", *req.Status)
			}
			status = *req.Status
			updates["status"] = status
		}
		if req.PaymentRequest != nil {
			updates["payment_request"] = *req.PaymentRequest
		}
		if status == models.InvoiceStatusPaid {
			updates["payment_request"] = false
		}
	} else {
		if req.Status != nil {
			return nil, fmt.Errorf("%w: only an admin can change the payment status", ErrForbidden)
		}
		roomID, err := s.roomOf(p.Phone)
		if err != nil {
			return nil, err
		}
		if roomID != inv.RoomID {
			return nil, fmt.Errorf("%w: invoice belongs to another room", ErrForbidden)
		}
		if *req.PaymentRequest && inv.Status == models.InvoiceStatusPaid {
			return nil, conflictErrorf("invoice is already paid")
		}
		updates["payment_request"] = *req.PaymentRequest
	}

	if err := s.db.Model(inv).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return s.find(id)
}

// List returns every invoice for admins, and the invoices of the caller's
// room otherwise. Newest period first.
func (s *InvoiceService) List(p policy.Principal) ([]models.Invoice, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Invoice{})
	if !p.IsAdmin() {
		roomID, err := s.roomOf(p.Phone)
		if err != nil {
			return nil, err
		}
		if roomID == "" {
			return []models.Invoice{}, nil
		}
		query = query.Where("room_id = ?", roomID)
	}

	var invoices []models.Invoice
	if err := query.Order("year DESC, month DESC, room_id ASC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *InvoiceService) Delete(p policy.Principal, id uuid.UUID) error {
	if err := policy.RequireAdmin(p); err != nil {
		return err
	}
	result := s.db.Where("id = ?", id).Delete(&models.Invoice{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("invoice %s", id)
	}
	return nil
}

func (s *InvoiceService) find(id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("invoice %s", id)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return &inv, nil
}

// roomOf returns the room the phone lives in, or "" when unassigned.
func (s *InvoiceService) roomOf(phone string) (string, error) {
	room, _, ok, err := roomOfPhone(s.building, phone)
	if err != nil || !ok {
		return "", err
	}
	return room.ID, nil
}
