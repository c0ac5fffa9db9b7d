package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	accounts *repository.AccountRepository
}

func NewAuthService(db *gorm.DB, cfg *config.Config, accounts *repository.AccountRepository) *AuthService {
	return &AuthService{db: db, cfg: cfg, accounts: accounts}
}

// Register creates an account. Phones listed in ADMIN_PHONES register as
// admins; everyone else starts as a user pending room assignment.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	phone, err := ParsePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationErrorf("name is required")
	}
	if len(req.Password) < 8 {
		return nil, validationErrorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if s.isBootstrapAdmin(phone) {
		role = models.RoleAdmin
	}
	acc := models.Account{
		Name:     name,
		Phone:    phone,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hash),
		Role:     role,
	}
	if err := s.accounts.Create(&acc); err != nil {
		if errors.Is(err, repository.ErrPhoneTaken) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	slog.Info("account registered", "account_id", acc.ID.String(), "role", acc.Role)
	return s.generateTokenPair(&acc)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	acc, err := s.accounts.FindByPhone(NormalizePhone(req.Phone))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.generateTokenPair(acc)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	acc, err := s.accounts.FindByID(stored.AccountID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.generateTokenPair(acc)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Me returns the caller's account.
func (s *AuthService) Me(p policy.Principal) (*dto.AccountResponse, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	acc, err := s.accounts.FindByID(p.AccountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, notFoundErrorf("account")
	}
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(acc)
	return &resp, nil
}

// SetRole promotes or demotes an account. Admins cannot demote themselves,
// so the building always keeps at least the acting admin.
func (s *AuthService) SetRole(p policy.Principal, phone, role string) (*dto.AccountResponse, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, validationErrorf("invalid role %q", role)
	}
	normalized := NormalizePhone(phone)
	if normalized == p.Phone && role != models.RoleAdmin {
		return nil, conflictErrorf("you cannot remove your own admin role")
	}

	acc, err := s.accounts.SetRole(normalized, role)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, notFoundErrorf("account %s", normalized)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("account role changed", "account_id", acc.ID.String(), "role", role, "by", p.AccountID.String())
	resp := ToAccountResponse(acc)
	return &resp, nil
}

// Principal resolves the account behind an access token subject.
func (s *AuthService) Principal(accountID uuid.UUID) (policy.Principal, error) {
	acc, err := s.accounts.FindByID(accountID)
	if err != nil {
		return policy.Principal{}, err
	}
	return policy.Principal{
		AccountID: acc.ID,
		Name:      acc.Name,
		Phone:     acc.Phone,
		Role:      acc.Role,
	}, nil
}

func (s *AuthService) isBootstrapAdmin(phone string) bool {
	for _, admin := range s.cfg.AdminPhoneList() {
		if NormalizePhone(admin) == phone {
			return true
		}
	}
	return false
}

func (s *AuthService) generateTokenPair(acc *models.Account) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(acc)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(acc)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      ToAccountResponse(acc),
	}, nil
}

func (s *AuthService) generateAccessToken(acc *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   acc.ID.String(),
		"phone": acc.Phone,
		"name":  acc.Name,
		"role":  acc.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(acc *models.Account) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		AccountID: acc.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// ToAccountResponse renders an account without its password hash.
func ToAccountResponse(acc *models.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        acc.ID,
		Name:      acc.Name,
		Phone:     acc.Phone,
		Email:     acc.Email,
		Role:      acc.Role,
		CreatedAt: acc.CreatedAt,
	}
}

// ToAccountResponses renders a list of accounts.
func ToAccountResponses(accounts []models.Account) []dto.AccountResponse {
	out := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
