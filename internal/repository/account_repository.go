package repository

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrPhoneTaken      = errors.New("phone already used by another account")
)

// AccountPatch holds the account fields mirrored from a resident edit.
type AccountPatch struct {
	Name  string
	Phone string
	Email string
}

// AccountRepository is the Account Directory, keyed by phone.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{db: tx}
}

func (r *AccountRepository) FindByPhone(phone string) (*models.Account, error) {
	var acc models.Account
	if err := r.db.Where("phone = ?", phone).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) FindByID(id uuid.UUID) (*models.Account, error) {
	var acc models.Account
	if err := r.db.First(&acc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) Create(acc *models.Account) error {
	if _, err := r.FindByPhone(acc.Phone); err == nil {
		return ErrPhoneTaken
	}
	if err := r.db.Create(acc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Patch updates the account currently holding oldPhone. A new phone that
// belongs to a different account fails with ErrPhoneTaken and changes nothing.
func (r *AccountRepository) Patch(oldPhone string, patch AccountPatch) (*models.Account, error) {
	acc, err := r.FindByPhone(oldPhone)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"email": patch.Email}
	if patch.Name != "" {
		updates["name"] = patch.Name
	}
	if patch.Phone != "" && patch.Phone != oldPhone {
		other, err := r.FindByPhone(patch.Phone)
		if err == nil && other.ID != acc.ID {
			return nil, ErrPhoneTaken
		}
		if err != nil && !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
		updates["phone"] = patch.Phone
	}

	if err := r.db.Model(acc).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return r.FindByID(acc.ID)
}

// DeleteByPhone removes the account and its refresh tokens. It reports false
// when no account holds the phone.
func (r *AccountRepository) DeleteByPhone(phone string) (bool, error) {
	acc, err := r.FindByPhone(phone)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := r.db.Where("account_id = ?", acc.ID).Delete(&models.RefreshToken{}).Error; err != nil {
		return false, fmt.Errorf("failed to revoke account tokens: %w", err)
	}
	if err := r.db.Delete(acc).Error; err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	return true, nil
}

func (r *AccountRepository) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) SetRole(phone, role string) (*models.Account, error) {
	acc, err := r.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(acc).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	acc.Role = role
	return acc, nil
}

// DeleteAllExcept removes every account other than keep, with their tokens.
func (r *AccountRepository) DeleteAllExcept(keep uuid.UUID) error {
	if err := r.db.Where("account_id <> ?", keep).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	if err := r.db.Where("id <> ?", keep).Delete(&models.Account{}).Error; err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}
