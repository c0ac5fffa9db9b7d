package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.MaintenancePending, models.MaintenanceInProgress, true},
		{models.MaintenancePending, models.MaintenanceCancelled, true},
		{models.MaintenanceInProgress, models.MaintenanceCompleted, true},
		{models.MaintenancePending, models.MaintenanceCompleted, false},
		{models.MaintenanceInProgress, models.MaintenanceCancelled, false},
		{models.MaintenanceInProgress, models.MaintenancePending, false},
		{models.MaintenanceCompleted, models.MaintenancePending, false},
		{models.MaintenanceCancelled, models.MaintenanceInProgress, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

type maintenanceFixture struct {
	*env
	svc    *MaintenanceService
	tenant policy.Principal
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "402", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	return &maintenanceFixture{
		env:    e,
		svc:    NewMaintenanceService(e.db, e.building),
		tenant: e.user(t, "Lan", "0912345678"),
	}
}

func (f *maintenanceFixture) file(t *testing.T) *models.MaintenanceRequest {
	t.Helper()
	m, err := f.svc.Create(f.tenant, &dto.CreateMaintenanceRequest{
		RoomID:      "701",
		SenderName:  "Someone Else",
		Title:       "Leaking tap",
		Description: "Kitchen tap drips all night",
	})
	require.NoError(t, err)
	return m
}

func TestCreateMaintenanceUsesSessionIdentity(t *testing.T) {
	f := newMaintenanceFixture(t)
	m := f.file(t)

	assert.Equal(t, "402", m.RoomID)
	assert.Equal(t, "Lan", m.SenderName)
	assert.Equal(t, "0912345678", m.Phone)
	assert.Equal(t, models.MaintenancePending, m.Status)
	assert.Equal(t, models.RequestTypeMaintenance, m.Type)
	assert.Equal(t, models.PriorityMedium, m.Priority)
}

func TestCreateMaintenanceAdminMayChooseRoom(t *testing.T) {
	f := newMaintenanceFixture(t)
	m, err := f.svc.Create(f.admin, &dto.CreateMaintenanceRequest{
		RoomID:      "701",
		SenderName:  "Guard",
		Type:        models.RequestTypeFeedback,
		Priority:    models.PriorityHigh,
		Title:       "Lobby light",
		Description: "Broken since Monday",
	})
	require.NoError(t, err)
	assert.Equal(t, "701", m.RoomID)
	assert.Equal(t, "Guard", m.SenderName)
	assert.Equal(t, f.admin.Phone, m.Phone)
}

func TestCreateMaintenanceValidation(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.Create(f.tenant, &dto.CreateMaintenanceRequest{Title: " ", Description: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(f.tenant, &dto.CreateMaintenanceRequest{Title: "x", Description: "y", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrValidation)

	homeless := f.user(t, "Minh", "0987654321")
	_, err = f.svc.Create(homeless, &dto.CreateMaintenanceRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(f.admin, &dto.CreateMaintenanceRequest{RoomID: "999", Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Create(anonymous(), &dto.CreateMaintenanceRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMaintenanceLifecycle(t *testing.T) {
	f := newMaintenanceFixture(t)
	m := f.file(t)

	_, err := f.svc.Update(f.admin, m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCompleted)})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := f.svc.Update(f.admin, m.ID, &dto.UpdateMaintenanceRequest{
		Status: strPtr(models.MaintenanceInProgress),
		Note:   strPtr("Plumber booked for Friday"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceInProgress, updated.Status)
	assert.Equal(t, "Plumber booked for Friday", updated.Note)

	_, err = f.svc.Update(f.admin, m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCancelled)})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err = f.svc.Update(f.admin, m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCompleted)})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceCompleted, updated.Status)
}

func TestTenantMayOnlyCancelOwnPendingRequest(t *testing.T) {
	f := newMaintenanceFixture(t)
	m := f.file(t)

	_, err := f.svc.Update(f.tenant, m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceInProgress)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Update(f.tenant, m.ID, &dto.UpdateMaintenanceRequest{
		Status:   strPtr(models.MaintenanceCancelled),
		Priority: strPtr(models.PriorityHigh),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Update(stranger(), m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCancelled)})
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.Update(f.tenant, m.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCancelled)})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceCancelled, cancelled.Status)

	other := f.file(t)
	_, err = f.svc.Update(f.admin, other.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceInProgress)})
	require.NoError(t, err)
	_, err = f.svc.Update(f.tenant, other.ID, &dto.UpdateMaintenanceRequest{Status: strPtr(models.MaintenanceCancelled)})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListAndDeleteMaintenance(t *testing.T) {
	f := newMaintenanceFixture(t)
	m := f.file(t)
	_, err := f.svc.Create(f.admin, &dto.CreateMaintenanceRequest{RoomID: "701", Title: "Lift", Description: "Noisy"})
	require.NoError(t, err)

	all, err := f.svc.List(f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.svc.List(f.tenant)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, m.ID, own[0].ID)

	assert.ErrorIs(t, f.svc.Delete(f.tenant, m.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(f.admin, m.ID))
	assert.ErrorIs(t, f.svc.Delete(f.admin, m.ID), ErrNotFound)

	_, err = f.svc.Update(f.admin, uuid.New(), &dto.UpdateMaintenanceRequest{Note: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}
