package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoomTypeRoom    = "room"
	RoomTypeParking = "parking"
	ParkingRoomID   = "parking"
)

// Resident is a person living in a room. It is owned by the room that embeds
// it; PhoneLogin links it to an Account when set.
type Resident struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PhoneLogin string `json:"phone_login"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Job        string `json:"job"`
	Hometown   string `json:"hometown"`
	IDCard     string `json:"id_card"`
	Plate      string `json:"plate"`
	Email      string `json:"email"`
}

type Room struct {
	ID        string     `json:"id"`
	Floor     int        `json:"floor"`
	Number    string     `json:"number"`
	Type      string     `json:"type"`
	Residents []Resident `json:"residents"`
}

// BuildingDirectory is the single document describing every room and its
// residents. Version is bumped on each write and compared on save.
type BuildingDirectory struct {
	ID        uint                       `gorm:"primaryKey" json:"-"`
	Version   int64                      `gorm:"not null;default:0" json:"version"`
	Rooms     datatypes.JSONType[[]Room] `json:"rooms"`
	UpdatedAt time.Time                  `json:"updated_at"`
}
