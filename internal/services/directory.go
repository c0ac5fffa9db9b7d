package services

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
)

// residentRef locates a resident inside the building document.
type residentRef struct {
	RoomID string
	Index  int
}

// locatePhone finds the resident whose login phone matches phone, across all
// rooms. Stored phones are compared in normalized form.
func locatePhone(rooms []models.Room, phone string) (residentRef, bool) {
	if phone == "" {
		return residentRef{}, false
	}
	for _, room := range rooms {
		for i, r := range room.Residents {
			if r.PhoneLogin != "" && NormalizePhone(r.PhoneLogin) == phone {
				return residentRef{RoomID: room.ID, Index: i}, true
			}
		}
	}
	return residentRef{}, false
}

// residentByPhone returns the room and resident whose login phone is phone.
// The pointers alias snap.
func residentByPhone(snap *repository.Snapshot, phone string) (*models.Room, *models.Resident, bool) {
	ref, ok := locatePhone(snap.Rooms, NormalizePhone(phone))
	if !ok {
		return nil, nil, false
	}
	room, ok := snap.Room(ref.RoomID)
	if !ok {
		return nil, nil, false
	}
	return room, &room.Residents[ref.Index], true
}

// roomOfPhone loads the directory and looks up the room phone lives in.
func roomOfPhone(building *repository.BuildingRepository, phone string) (*models.Room, *models.Resident, bool, error) {
	snap, err := building.Load()
	if err != nil {
		return nil, nil, false, err
	}
	room, resident, ok := residentByPhone(snap, phone)
	return room, resident, ok, nil
}
