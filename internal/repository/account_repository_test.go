package repository

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, repo *AccountRepository, name, phone string) *models.Account {
	t.Helper()
	acc := &models.Account{Name: name, Phone: phone, Password: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(acc))
	return acc
}

func TestCreateRejectsDuplicatePhone(t *testing.T) {
	repo := NewAccountRepository(testutil.NewDB(t))
	newAccount(t, repo, "Lan", "0912345678")

	err := repo.Create(&models.Account{Name: "Copy", Phone: "0912345678", Password: "x"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestPatchAccount(t *testing.T) {
	repo := NewAccountRepository(testutil.NewDB(t))
	lan := newAccount(t, repo, "Lan", "0912345678")
	newAccount(t, repo, "Minh", "0987654321")

	_, err := repo.Patch("0912345678", AccountPatch{Name: "Lan", Phone: "0987654321"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	_, err = repo.Patch("0900000000", AccountPatch{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	patched, err := repo.Patch("0912345678", AccountPatch{Name: "Lan N", Phone: "0911111111", Email: "lan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, lan.ID, patched.ID)
	assert.Equal(t, "0911111111", patched.Phone)
	assert.Equal(t, "Lan N", patched.Name)
	assert.Equal(t, "lan@example.com", patched.Email)
}

func TestDeleteByPhoneRevokesTokens(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAccountRepository(db)
	lan := newAccount(t, repo, "Lan", "0912345678")
	require.NoError(t, db.Create(&models.RefreshToken{
		ID:        uuid.New(),
		AccountID: lan.ID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	deleted, err := repo.DeleteByPhone("0912345678")
	require.NoError(t, err)
	assert.True(t, deleted)

	var tokens int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&tokens).Error)
	assert.Zero(t, tokens)

	deleted, err = repo.DeleteByPhone("0912345678")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSetRoleAndDeleteAllExcept(t *testing.T) {
	repo := NewAccountRepository(testutil.NewDB(t))
	keep := newAccount(t, repo, "Admin", "0900000000")
	newAccount(t, repo, "Lan", "0912345678")
	newAccount(t, repo, "Minh", "0987654321")

	acc, err := repo.SetRole("0900000000", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())

	_, err = repo.SetRole("0999999999", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	require.NoError(t, repo.DeleteAllExcept(keep.ID))
	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}
