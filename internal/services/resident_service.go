package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxDirectoryAttempts bounds retries of a directory write that lost a
// version race. Each attempt re-runs its checks on the fresh document.
const maxDirectoryAttempts = 3

// Warnings attached to a successful removal.
const (
	WarnNoAccount       = "no account to delete"
	WarnAccountNotFound = "no account found for this phone"
	WarnAccountKept     = "account belongs to an admin and was kept"
	WarnAccountFailed   = "account could not be deleted"
)

// RemoveResult is the outcome of RemoveResident. A non-empty Warning means
// the resident was removed but its account was not.
type RemoveResult struct {
	Resident       models.Resident
	AccountDeleted bool
	Warning        string
}

// ResidentService owns every write that touches both the building directory
// and the account directory, and keeps them consistent: each resident with a
// login phone has exactly one account, and each account is either a resident
// or pending assignment.
type ResidentService struct {
	db       *gorm.DB
	building *repository.BuildingRepository
	accounts *repository.AccountRepository
}

func NewResidentService(db *gorm.DB, building *repository.BuildingRepository, accounts *repository.AccountRepository) *ResidentService {
	return &ResidentService{db: db, building: building, accounts: accounts}
}

// mutate runs fn against the latest directory inside a transaction and saves
// the result. A lost version race is retried from a fresh load.
func (s *ResidentService) mutate(fn func(tx *gorm.DB, snap *repository.Snapshot) error) error {
	var err error
	for attempt := 1; attempt <= maxDirectoryAttempts; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			building := s.building.WithTx(tx)
			snap, err := building.Load()
			if err != nil {
				return err
			}
			if err := fn(tx, snap); err != nil {
				return err
			}
			return building.Save(snap)
		})
		if !errors.Is(err, repository.ErrStaleDirectory) {
			return err
		}
		slog.Warn("building directory changed during write, retrying", "attempt", attempt)
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// AddResident appends a resident to a room. A login phone, when given, must
// be well formed and not used by any resident of the building.
func (s *ResidentService) AddResident(p policy.Principal, roomID string, req *dto.ResidentRequest) (*models.Resident, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	resident, err := residentFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.mutate(func(_ *gorm.DB, snap *repository.Snapshot) error {
		return addToRoom(snap, roomID, resident)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("resident added", "room_id", roomID, "resident_id", resident.ID, "phone", resident.PhoneLogin)
	return &resident, nil
}

// EditResident replaces the fields of the resident at index. When the
// resident has a login phone, the linked account is patched first; a new
// phone held by a different account aborts the edit with nothing written.
func (s *ResidentService) EditResident(p policy.Principal, roomID string, index int, req *dto.ResidentRequest) (*models.Resident, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	fields, err := residentFromRequest(req)
	if err != nil {
		return nil, err
	}

	var (
		updated models.Resident
		patched bool
	)
	err = s.mutate(func(tx *gorm.DB, snap *repository.Snapshot) error {
		patched = false
		room, err := residentRoom(snap, roomID, index)
		if err != nil {
			return err
		}
		old := room.Residents[index]
		oldPhone := NormalizePhone(old.PhoneLogin)

		if fields.PhoneLogin == "" && oldPhone != "" {
			return validationErrorf("login phone cannot be removed from a resident with an account")
		}
		if ref, taken := locatePhone(snap.Rooms, fields.PhoneLogin); taken && (ref.RoomID != roomID || ref.Index != index) {
			return &PhoneConflictError{Phone: fields.PhoneLogin, RoomID: ref.RoomID, Source: "resident"}
		}

		if oldPhone != "" {
			_, err := s.accounts.WithTx(tx).Patch(oldPhone, repository.AccountPatch{
				Name:  fields.Name,
				Phone: fields.PhoneLogin,
				Email: fields.Email,
			})
			switch {
			case errors.Is(err, repository.ErrPhoneTaken):
				return &PhoneConflictError{Phone: fields.PhoneLogin, Source: "account"}
			case errors.Is(err, repository.ErrAccountNotFound):
				// Resident never registered; only the directory changes.
			case err != nil:
				return err
			default:
				patched = true
			}
		}

		fields.ID = old.ID
		room.Residents[index] = fields
		updated = fields
		return nil
	})
	if err != nil {
		if patched && !isClientError(err) {
			reportReconciliationFault("resident edit failed after account patch",
				"room_id", roomID, "index", index, "error", err.Error(), "rolled_back", true)
		}
		return nil, err
	}

	slog.Info("resident updated", "room_id", roomID, "resident_id", updated.ID)
	return &updated, nil
}

// RemoveResident removes the resident at index, then deletes its account on a
// best-effort basis. Account problems are reported in the result's Warning.
func (s *ResidentService) RemoveResident(p policy.Principal, roomID string, index int) (*RemoveResult, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}

	var removed models.Resident
	err := s.mutate(func(_ *gorm.DB, snap *repository.Snapshot) error {
		room, err := residentRoom(snap, roomID, index)
		if err != nil {
			return err
		}
		removed = room.Residents[index]
		room.Residents = append(room.Residents[:index:index], room.Residents[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Resident: removed}
	phone := NormalizePhone(removed.PhoneLogin)
	if phone == "" {
		result.Warning = WarnNoAccount
		return result, nil
	}

	acc, err := s.accounts.FindByPhone(phone)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		result.Warning = WarnAccountNotFound
		return result, nil
	case err != nil:
		reportReconciliationFault("account lookup failed after resident removal",
			"room_id", roomID, "phone", phone, "error", err.Error())
		result.Warning = WarnAccountFailed
		return result, nil
	case acc.IsAdmin():
		result.Warning = WarnAccountKept
		return result, nil
	}

	deleted, err := s.accounts.DeleteByPhone(phone)
	if err != nil {
		reportReconciliationFault("account delete failed after resident removal",
			"room_id", roomID, "phone", phone, "error", err.Error())
		result.Warning = WarnAccountFailed
		return result, nil
	}
	if !deleted {
		result.Warning = WarnAccountNotFound
		return result, nil
	}
	result.AccountDeleted = true

	slog.Info("resident removed", "room_id", roomID, "resident_id", removed.ID, "account_deleted", true)
	return result, nil
}

// UnassignedAccounts lists non-admin accounts whose phone is not a resident
// login phone anywhere in the building. The list is always derived.
func (s *ResidentService) UnassignedAccounts(p policy.Principal) ([]models.Account, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.List()
	if err != nil {
		return nil, err
	}
	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}

	result := make([]models.Account, 0)
	for _, acc := range accounts {
		if acc.IsAdmin() {
			continue
		}
		if _, ok := locatePhone(snap.Rooms, acc.Phone); ok {
			continue
		}
		result = append(result, acc)
	}
	return result, nil
}

// AssignAccount places a pending account into a room as a new resident.
// Name and email default to the account's own.
func (s *ResidentService) AssignAccount(p policy.Principal, phone string, req *dto.AssignAccountRequest) (*models.Resident, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	normalized, err := ParsePhone(phone)
	if err != nil {
		return nil, err
	}
	acc, err := s.accounts.FindByPhone(normalized)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, notFoundErrorf("account %s", normalized)
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = acc.Name
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = acc.Email
	}
	resident := models.Resident{
		ID:         uuid.NewString(),
		Name:       name,
		PhoneLogin: acc.Phone,
		DOB:        req.DOB,
		Gender:     strings.TrimSpace(req.Gender),
		Job:        strings.TrimSpace(req.Job),
		Hometown:   strings.TrimSpace(req.Hometown),
		IDCard:     strings.TrimSpace(req.IDCard),
		Plate:      strings.TrimSpace(req.Plate),
		Email:      email,
	}

	err = s.mutate(func(_ *gorm.DB, snap *repository.Snapshot) error {
		return addToRoom(snap, req.RoomID, resident)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("account assigned to room", "room_id", req.RoomID, "phone", acc.Phone)
	return &resident, nil
}

// Building returns the whole directory with stats. Non-admins see personal
// details only for their own record.
func (s *ResidentService) Building(p policy.Principal) (*dto.BuildingResponse, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		redact(snap.Rooms, p.Phone)
	}
	return &dto.BuildingResponse{Version: snap.Version, Rooms: snap.Rooms, Stats: statsOf(snap.Rooms)}, nil
}

func (s *ResidentService) Room(p policy.Principal, roomID string) (*models.Room, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		redact(snap.Rooms, p.Phone)
	}
	room, ok := snap.Room(roomID)
	if !ok {
		return nil, notFoundErrorf("room %s", roomID)
	}
	return room, nil
}

// ParkingPlates lists every registered vehicle plate with its owner.
func (s *ResidentService) ParkingPlates(p policy.Principal) ([]dto.ParkingPlate, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	snap, err := s.building.Load()
	if err != nil {
		return nil, err
	}
	plates := make([]dto.ParkingPlate, 0)
	for _, room := range snap.Rooms {
		for _, r := range room.Residents {
			if plate := strings.TrimSpace(r.Plate); plate != "" {
				plates = append(plates, dto.ParkingPlate{Plate: plate, Owner: r.Name, RoomID: room.ID})
			}
		}
	}
	return plates, nil
}

// RoomOfPhone returns the room whose residents include phone.
func (s *ResidentService) RoomOfPhone(phone string) (*models.Room, *models.Resident, bool, error) {
	return roomOfPhone(s.building, phone)
}

// MyRoom returns the room the caller lives in, with the same redaction as
// Building for roommates.
func (s *ResidentService) MyRoom(p policy.Principal) (*models.Room, error) {
	if err := policy.Authenticated(p).Err(); err != nil {
		return nil, err
	}
	room, _, ok, err := s.RoomOfPhone(p.Phone)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundErrorf("account is not assigned to a room")
	}
	rooms := []models.Room{*room}
	if !p.IsAdmin() {
		redact(rooms, p.Phone)
	}
	return &rooms[0], nil
}

func residentFromRequest(req *dto.ResidentRequest) (models.Resident, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Resident{}, validationErrorf("resident name is required")
	}
	var phone string
	if strings.TrimSpace(req.Phone) != "" {
		parsed, err := ParsePhone(req.Phone)
		if err != nil {
			return models.Resident{}, err
		}
		phone = parsed
	}
	return models.Resident{
		ID:         uuid.NewString(),
		Name:       name,
		PhoneLogin: phone,
		DOB:        req.DOB,
		Gender:     strings.TrimSpace(req.Gender),
		Job:        strings.TrimSpace(req.Job),
		Hometown:   strings.TrimSpace(req.Hometown),
		IDCard:     strings.TrimSpace(req.IDCard),
		Plate:      strings.TrimSpace(req.Plate),
		Email:      strings.TrimSpace(req.Email),
	}, nil
}

func addToRoom(snap *repository.Snapshot, roomID string, resident models.Resident) error {
	room, ok := snap.Room(roomID)
	if !ok {
		return notFoundErrorf("room %s", roomID)
	}
	if room.Type != models.RoomTypeRoom {
		return validationErrorf("room %s does not take residents", roomID)
	}
	if ref, taken := locatePhone(snap.Rooms, resident.PhoneLogin); taken {
		return &PhoneConflictError{Phone: resident.PhoneLogin, RoomID: ref.RoomID, Source: "resident"}
	}
	room.Residents = append(room.Residents, resident)
	return nil
}

func residentRoom(snap *repository.Snapshot, roomID string, index int) (*models.Room, error) {
	room, ok := snap.Room(roomID)
	if !ok {
		return nil, notFoundErrorf("room %s", roomID)
	}
	if index < 0 || index >= len(room.Residents) {
		return nil, notFoundErrorf("resident %d in room %s", index, roomID)
	}
	return room, nil
}

func redact(rooms []models.Room, viewerPhone string) {
	for i := range rooms {
		for j := range rooms[i].Residents {
			r := &rooms[i].Residents[j]
			if viewerPhone != "" && NormalizePhone(r.PhoneLogin) == viewerPhone {
				continue
			}
			r.DOB = ""
			r.IDCard = ""
			r.Email = ""
		}
	}
}

func statsOf(rooms []models.Room) dto.BuildingStats {
	var st dto.BuildingStats
	for _, room := range rooms {
		if room.Type != models.RoomTypeRoom {
			continue
		}
		st.Rooms++
		if len(room.Residents) > 0 {
			st.OccupiedRooms++
		}
		st.Residents += len(room.Residents)
		for _, r := range room.Residents {
			if strings.TrimSpace(r.Plate) != "" {
				st.Vehicles++
			}
		}
	}
	return st
}

// isClientError reports errors caused by the request rather than storage.
func isClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden)
}
