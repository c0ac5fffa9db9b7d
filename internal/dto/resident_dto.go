package dto

import "github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"

// ResidentRequest carries the editable resident fields. Phone is the login
// phone and may contain separators; it is normalized server-side.
type ResidentRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Phone    string `json:"phone_login" validate:"max=20"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"max=20"`
	Job      string `json:"job" validate:"max=255"`
	Hometown string `json:"hometown" validate:"max=255"`
	IDCard   string `json:"id_card" validate:"max=50"`
	Plate    string `json:"plate" validate:"max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// AssignAccountRequest places an unassigned account into a room. Name and
// email default to the account's own values.
type AssignAccountRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	Name     string `json:"name" validate:"max=255"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"max=20"`
	Job      string `json:"job" validate:"max=255"`
	Hometown string `json:"hometown" validate:"max=255"`
	IDCard   string `json:"id_card" validate:"max=50"`
	Plate    string `json:"plate" validate:"max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type RemoveResidentResponse struct {
	Resident       models.Resident `json:"resident"`
	AccountDeleted bool            `json:"account_deleted"`
	Warning        string          `json:"warning,omitempty"`
}

type ParkingPlate struct {
	Plate  string `json:"plate"`
	Owner  string `json:"owner"`
	RoomID string `json:"room_id"`
}

type BuildingStats struct {
	Rooms         int `json:"rooms"`
	OccupiedRooms int `json:"occupied_rooms"`
	Residents     int `json:"residents"`
	Vehicles      int `json:"vehicles"`
}

type BuildingResponse struct {
	Version int64         `json:"version"`
	Rooms   []models.Room `json:"rooms"`
	Stats   BuildingStats `json:"stats"`
}
