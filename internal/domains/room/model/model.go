package model

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"roomstack/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"
	PhotoDir   = "rooms"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldCapacity    = "capacity"
	FieldNightlyRate = "nightly_rate"
	FieldStatus      = "status"
	FieldFloor       = "floor"
	FieldBeds        = "beds"
	FieldFeatures    = "features"
	FieldDescription = "description"
	FieldPhotoURL    = "photo_url"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

// Statuses lists every room status in display order.
var Statuses = []Status{StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusOccupied:
		return "Occupied"
	case StatusMaintenance:
		return "Under Maintenance"
	case StatusReserved:
		return "Reserved"
	default:
		return string(s)
	}
}

// Beds maps a bed type (single, double, queen, king) to how many the room has.
type Beds = datatypes.JSONType[map[string]int]

type Room struct {
	ID          string          `db:"id"`
	Number      string          `db:"number"`
	Capacity    int             `db:"capacity"`
	NightlyRate decimal.Decimal `db:"nightly_rate"`
	Status      Status          `db:"status"`
	Floor       int             `db:"floor"`
	Beds        Beds            `db:"beds"`
	Features    pq.StringArray  `db:"features"`
	Description string          `db:"description"`
	PhotoURL    string          `db:"photo_url"`
	model.Metadata
}

func NewBeds(beds map[string]int) Beds {
	if beds == nil {
		beds = map[string]int{}
	}

	return datatypes.NewJSONType(beds)
}
