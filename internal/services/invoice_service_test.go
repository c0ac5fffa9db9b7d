package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func invoiceRequest(roomID string, oldReading, newReading int64) *dto.UpsertInvoiceRequest {
	return &dto.UpsertInvoiceRequest{
		RoomID:      roomID,
		Month:       3,
		Year:        2024,
		RoomPrice:   3000000,
		Electricity: dto.MeterInput{OldValue: oldReading, NewValue: newReading},
	}
}

func TestUpsertInvoiceTwiceKeepsOneRecord(t *testing.T) {
	e := newEnv(t)
	svc := NewInvoiceService(e.db, e.building, e.settings)

	first, err := svc.Upsert(e.admin, invoiceRequest("701", 100, 200))
	require.NoError(t, err)

	req := invoiceRequest("701", 100, 300)
	req.RoomPrice = 3500000
	second, err := svc.Upsert(e.admin, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, e.db.Model(&models.Invoice{}).
		Where("room_id = ? AND month = ? AND year = ?", "701", 3, 2024).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(3500000), second.RoomPrice)
	assert.Equal(t, int64(300), second.Electricity.NewValue)
	assert.Equal(t, int64(200*2500), second.ElectricityCharge)
	assert.Equal(t, int64(3500000+200*2500), second.TotalAmount)
}

func TestUpsertInvoiceUsesOccupancyAndRepresentative(t *testing.T) {
	e := newEnv(t)
	residents := e.residents()
	_, err := residents.AddResident(e.admin, "602", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	_, err = residents.AddResident(e.admin, "602", &dto.ResidentRequest{Name: "Minh"})
	require.NoError(t, err)

	svc := NewInvoiceService(e.db, e.building, e.settings)
	inv, err := svc.Upsert(e.admin, invoiceRequest("602", 50, 40))
	require.NoError(t, err)

	assert.Equal(t, 2, inv.ResidentCount)
	assert.Equal(t, "Lan", inv.RepresentativeName)
	assert.Equal(t, int64(0), inv.ElectricityCharge)
	assert.Equal(t, int64(2*100000), inv.WaterFee)
	assert.Equal(t, int64(3000000+2*400000), inv.TotalAmount)
	assert.Equal(t, models.InvoiceStatusPending, inv.Status)

	req := invoiceRequest("602", 50, 40)
	req.ResidentCount = intPtr(1)
	inv, err = svc.Upsert(e.admin, req)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.ResidentCount)
}

func TestUpsertInvoiceValidation(t *testing.T) {
	e := newEnv(t)
	svc := NewInvoiceService(e.db, e.building, e.settings)

	req := invoiceRequest("701", 0, 10)
	req.Month = 13
	_, err := svc.Upsert(e.admin, req)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upsert(e.admin, invoiceRequest("999", 0, 10))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Upsert(e.admin, invoiceRequest("parking", 0, 10))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upsert(e.user(t, "Lan", "0912345678"), invoiceRequest("701", 0, 10))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestInvoiceSnapshotsFeesAtCreation(t *testing.T) {
	e := newEnv(t)
	svc := NewInvoiceService(e.db, e.building, e.settings)

	req := invoiceRequest("701", 0, 10)
	req.ResidentCount = intPtr(1)
	march, err := svc.Upsert(e.admin, req)
	require.NoError(t, err)

	_, err = e.settings.UpdateFees(e.admin, &dto.UpdateFeesRequest{ElectricityPrice: int64Ptr(3000)})
	require.NoError(t, err)

	var stored models.Invoice
	require.NoError(t, e.db.First(&stored, "id = ?", march.ID).Error)
	assert.Equal(t, int64(2500), stored.Electricity.Price)
	assert.Equal(t, march.TotalAmount, stored.TotalAmount)

	req.Month = 4
	april, err := svc.Upsert(e.admin, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), april.Electricity.Price)
	assert.Equal(t, int64(30000), april.ElectricityCharge)
}

func TestAdminMarkingPaidClearsPaymentRequest(t *testing.T) {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "701", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	tenant := e.user(t, "Lan", "0912345678")

	svc := NewInvoiceService(e.db, e.building, e.settings)
	inv, err := svc.Upsert(e.admin, invoiceRequest("701", 0, 10))
	require.NoError(t, err)

	inv, err = svc.SetStatus(tenant, inv.ID, &dto.PatchInvoiceRequest{PaymentRequest: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, inv.PaymentRequest)

	inv, err = svc.SetStatus(e.admin, inv.ID, &dto.PatchInvoiceRequest{Status: strPtr(models.InvoiceStatusPaid)})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	assert.False(t, inv.PaymentRequest)

	// Even when the admin asks for both at once.
	inv, err = svc.SetStatus(e.admin, inv.ID, &dto.PatchInvoiceRequest{
		Status:         strPtr(models.InvoiceStatusPaid),
		PaymentRequest: boolPtr(true),
	})
	require.NoError(t, err)
	assert.False(t, inv.PaymentRequest)

	inv, err = svc.SetStatus(e.admin, inv.ID, &dto.PatchInvoiceRequest{Status: strPtr(models.InvoiceStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
}

func TestNonAdminCannotSetInvoiceStatus(t *testing.T) {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "701", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	tenant := e.user(t, "Lan", "0912345678")

	svc := NewInvoiceService(e.db, e.building, e.settings)
	inv, err := svc.Upsert(e.admin, invoiceRequest("701", 0, 10))
	require.NoError(t, err)

	_, err = svc.SetStatus(tenant, inv.ID, &dto.PatchInvoiceRequest{Status: strPtr(models.InvoiceStatusPaid)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetStatus(tenant, inv.ID, &dto.PatchInvoiceRequest{
		Status:         strPtr(models.InvoiceStatusPaid),
		PaymentRequest: boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	var stored models.Invoice
	require.NoError(t, e.db.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvoiceStatusPending, stored.Status)
	assert.False(t, stored.PaymentRequest)
}

func TestTenantCannotFlagAnotherRoomsInvoice(t *testing.T) {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "702", &dto.ResidentRequest{Name: "Minh", Phone: "0987654321"})
	require.NoError(t, err)
	neighbour := e.user(t, "Minh", "0987654321")

	svc := NewInvoiceService(e.db, e.building, e.settings)
	inv, err := svc.Upsert(e.admin, invoiceRequest("701", 0, 10))
	require.NoError(t, err)

	_, err = svc.SetStatus(neighbour, inv.ID, &dto.PatchInvoiceRequest{PaymentRequest: boolPtr(true)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetStatus(e.user(t, "Nobody", "0911111111"), inv.ID, &dto.PatchInvoiceRequest{PaymentRequest: boolPtr(true)})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListInvoicesScopesTenantsToTheirRoom(t *testing.T) {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "701", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	tenant := e.user(t, "Lan", "0912345678")
	unassigned := e.user(t, "Hoa", "0911111111")

	svc := NewInvoiceService(e.db, e.building, e.settings)
	_, err = svc.Upsert(e.admin, invoiceRequest("701", 0, 10))
	require.NoError(t, err)
	_, err = svc.Upsert(e.admin, invoiceRequest("702", 0, 10))
	require.NoError(t, err)

	all, err := svc.List(e.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(tenant)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "701", mine[0].RoomID)

	none, err := svc.List(unassigned)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.List(anonymous())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteInvoice(t *testing.T) {
	e := newEnv(t)
	svc := NewInvoiceService(e.db, e.building, e.settings)
	inv, err := svc.Upsert(e.admin, invoiceRequest("701", 0, 10))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(stranger(), inv.ID), ErrForbidden)
	require.NoError(t, svc.Delete(e.admin, inv.ID))
	assert.ErrorIs(t, svc.Delete(e.admin, inv.ID), ErrNotFound)
}
