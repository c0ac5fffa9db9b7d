package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const directoryID = 1

// ErrStaleDirectory means the building document changed between Load and Save.
var ErrStaleDirectory = errors.New("building directory was modified concurrently")

// FloorPlan describes how many rooms a floor has. Parking floors hold the
// parking pseudo-room instead.
type FloorPlan struct {
	Floor   int
	Rooms   int
	Parking bool
}

// DefaultFloorPlan is the layout seeded when no directory exists yet.
var DefaultFloorPlan = []FloorPlan{
	{Floor: 7, Rooms: 3},
	{Floor: 6, Rooms: 4},
	{Floor: 5, Rooms: 4},
	{Floor: 4, Rooms: 4},
	{Floor: 3, Rooms: 4},
	{Floor: 2, Rooms: 2},
	{Floor: 1, Parking: true},
}

// Layout builds empty rooms for a floor plan. Room ids are floor + "0" + index.
func Layout(plan []FloorPlan) []models.Room {
	rooms := make([]models.Room, 0, 32)
	for _, f := range plan {
		if f.Parking {
			rooms = append(rooms, models.Room{
				ID:        models.ParkingRoomID,
				Floor:     f.Floor,
				Number:    "Parking",
				Type:      models.RoomTypeParking,
				Residents: []models.Resident{},
			})
			continue
		}
		for i := 1; i <= f.Rooms; i++ {
			id := fmt.Sprintf("%d0%d", f.Floor, i)
			rooms = append(rooms, models.Room{
				ID:        id,
				Floor:     f.Floor,
				Number:    id,
				Type:      models.RoomTypeRoom,
				Residents: []models.Resident{},
			})
		}
	}
	return rooms
}

// Snapshot is a detached copy of the building document at a given version.
type Snapshot struct {
	Version int64
	Rooms   []models.Room
}

// Room returns a pointer into the snapshot so callers can mutate it before Save.
func (s *Snapshot) Room(id string) (*models.Room, bool) {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i], true
		}
	}
	return nil, false
}

// BuildingRepository is the Resident Directory Store.
type BuildingRepository struct {
	db   *gorm.DB
	plan []FloorPlan
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db, plan: DefaultFloorPlan}
}

// WithTx returns a repository bound to tx.
func (r *BuildingRepository) WithTx(tx *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: tx, plan: r.plan}
}

// Load returns the current building document, seeding the default layout on
// first use.
func (r *BuildingRepository) Load() (*Snapshot, error) {
	var doc models.BuildingDirectory
	err := r.db.First(&doc, "id = ?", directoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed := models.BuildingDirectory{
			ID:        directoryID,
			Version:   1,
			Rooms:     datatypes.NewJSONType(Layout(r.plan)),
			UpdatedAt: time.Now(),
		}
		if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return nil, fmt.Errorf("failed to seed building directory: %w", err)
		}
		err = r.db.First(&doc, "id = ?", directoryID).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load building directory: %w", err)
	}

	rooms := doc.Rooms.Data()
	for i := range rooms {
		if rooms[i].Residents == nil {
			rooms[i].Residents = []models.Resident{}
		}
	}
	return &Snapshot{Version: doc.Version, Rooms: rooms}, nil
}

// Save writes the snapshot if nobody else saved since it was loaded, and
// advances snap.Version on success.
func (r *BuildingRepository) Save(snap *Snapshot) error {
	result := r.db.Model(&models.BuildingDirectory{}).
		Where("id = ? AND version = ?", directoryID, snap.Version).
		Updates(map[string]interface{}{
			"rooms":      datatypes.NewJSONType(snap.Rooms),
			"version":    snap.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save building directory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleDirectory
	}
	snap.Version++
	return nil
}

// ClearResidents empties every room while keeping the layout.
func (r *BuildingRepository) ClearResidents() error {
	snap, err := r.Load()
	if err != nil {
		return err
	}
	for i := range snap.Rooms {
		snap.Rooms[i].Residents = []models.Resident{}
	}
	return r.Save(snap)
}
