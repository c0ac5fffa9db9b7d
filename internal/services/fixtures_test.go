package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testFees = FeeSchedule{
	ElectricityPrice:    2500,
	WaterPerResident:    100000,
	InternetPerResident: 100000,
	ServicePerResident:  200000,
}

type env struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	accounts *repository.AccountRepository
	settings *SettingsService
	admin    policy.Principal
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	e := &env{
		db:       db,
		building: repository.NewBuildingRepository(db),
		accounts: repository.NewAccountRepository(db),
		settings: NewSettingsService(db, testFees),
	}
	require.NoError(t, e.settings.SeedDefaults())
	e.admin = e.principal(t, e.createAccount(t, "Admin", "0900000000", models.RoleAdmin))
	return e
}

func (e *env) createAccount(t *testing.T, name, phone, role string) *models.Account {
	t.Helper()
	acc := &models.Account{Name: name, Phone: phone, Email: name + "@example.com", Password: "x", Role: role}
	require.NoError(t, e.accounts.Create(acc))
	return acc
}

func (e *env) principal(t *testing.T, acc *models.Account) policy.Principal {
	t.Helper()
	return policy.Principal{AccountID: acc.ID, Name: acc.Name, Phone: acc.Phone, Role: acc.Role}
}

// user registers an account and returns its principal without placing it in
// any room.
func (e *env) user(t *testing.T, name, phone string) policy.Principal {
	t.Helper()
	return e.principal(t, e.createAccount(t, name, phone, models.RoleUser))
}

func (e *env) residents() *ResidentService {
	return NewResidentService(e.db, e.building, e.accounts)
}

func (e *env) room(t *testing.T, id string) models.Room {
	t.Helper()
	snap, err := e.building.Load()
	require.NoError(t, err)
	room, ok := snap.Room(id)
	require.True(t, ok, "room %s", id)
	return *room
}

func anonymous() policy.Principal {
	return policy.Principal{}
}

func stranger() policy.Principal {
	return policy.Principal{AccountID: uuid.New(), Name: "Stranger", Phone: "0999999999", Role: models.RoleUser}
}
