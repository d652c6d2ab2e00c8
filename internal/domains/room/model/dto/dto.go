package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"roomstack/internal/domains/room/model"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	gModel "roomstack/shared/model"
	"roomstack/shared/timezone"
)

const MaxPhotoSize = constant.BytesInMegabyte

type CreateRoomRequest struct {
	Number      string          `json:"number"       validate:"required,max=10"`
	Capacity    int             `json:"capacity"     validate:"required,min=1"`
	NightlyRate decimal.Decimal `json:"nightly_rate" validate:"gte=0"`
	Status      string          `json:"status"       validate:"omitempty,oneof=available occupied maintenance reserved"`
	Floor       int             `json:"floor"        validate:"required,min=1"`
	Beds        map[string]int  `json:"beds"         validate:"omitempty,dive,keys,oneof=single double queen king,endkeys,min=1"`
	Features    []string        `json:"features"     validate:"omitempty,dive,required,max=50"`
	Description string          `json:"description"  validate:"omitempty,max=1000"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != constant.Empty {
		status = model.Status(c.Status)
	}

	features := pq.StringArray{}
	if c.Features != nil {
		features = pq.StringArray(c.Features)
	}

	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Capacity:    c.Capacity,
		NightlyRate: c.NightlyRate.Round(constant.MoneyScale),
		Status:      status,
		Floor:       c.Floor,
		Beds:        model.NewBeds(c.Beds),
		Features:    features,
		Description: c.Description,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	Number      *string          `json:"number"       validate:"omitempty,min=1,max=10"`
	Capacity    *int             `json:"capacity"     validate:"omitempty,min=1"`
	NightlyRate *decimal.Decimal `json:"nightly_rate" validate:"omitempty,gte=0"`
	Status      *string          `json:"status"       validate:"omitempty,oneof=available occupied maintenance reserved"`
	Floor       *int             `json:"floor"        validate:"omitempty,min=1"`
	Beds        map[string]int   `json:"beds"         validate:"omitempty,dive,keys,oneof=single double queen king,endkeys,min=1"`
	Features    []string         `json:"features"     validate:"omitempty,dive,required,max=50"`
	Description *string          `json:"description"  validate:"omitempty,max=1000"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Fields returns the columns to write. Absent fields are left untouched.
func (u *UpdateRoomRequest) Fields() map[string]any {
	fields := map[string]any{}

	if u.Number != nil {
		fields[model.FieldNumber] = *u.Number
	}

	if u.Capacity != nil {
		fields[model.FieldCapacity] = *u.Capacity
	}

	if u.NightlyRate != nil {
		fields[model.FieldNightlyRate] = u.NightlyRate.Round(constant.MoneyScale)
	}

	if u.Status != nil {
		fields[model.FieldStatus] = model.Status(*u.Status)
	}

	if u.Floor != nil {
		fields[model.FieldFloor] = *u.Floor
	}

	if u.Beds != nil {
		fields[model.FieldBeds] = model.NewBeds(u.Beds)
	}

	if u.Features != nil {
		fields[model.FieldFeatures] = pq.StringArray(u.Features)
	}

	if u.Description != nil {
		fields[model.FieldDescription] = *u.Description
	}

	return fields
}

type UploadPhotoRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type" validate:"required,oneof=image/png image/jpeg"`
	Size        int64  `json:"size"         validate:"gt=0,lte=1048576"`
	Data        []byte `json:"-"`
}

// ObjectName names the stored photo after its room. A fresh suffix per upload keeps cached
// URLs of the previous photo from serving the new one.
func (u *UploadPhotoRequest) ObjectName(roomID string) string {
	ext := ".jpg"
	if u.ContentType == constant.ContentTypePNG {
		ext = ".png"
	}

	return fmt.Sprintf("%s-%s%s", roomID, uuid.NewString(), ext)
}

type RoomResponse struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	Capacity    int            `json:"capacity"`
	NightlyRate string         `json:"nightly_rate"`
	Status      string         `json:"status"`
	StatusLabel string         `json:"status_label"`
	Floor       int            `json:"floor"`
	Beds        map[string]int `json:"beds"`
	Features    []string       `json:"features"`
	Description string         `json:"description"`
	PhotoURL    string         `json:"photo_url"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Capacity = model.Capacity
	r.NightlyRate = model.NightlyRate.StringFixed(constant.MoneyScale)
	r.Status = string(model.Status)
	r.StatusLabel = model.Status.Label()
	r.Floor = model.Floor
	r.Beds = model.Beds.Data()
	r.Features = []string(model.Features)
	r.Description = model.Description
	r.PhotoURL = model.PhotoURL
	r.Metadata.FromModel(model.Metadata)

	if r.Beds == nil {
		r.Beds = map[string]int{}
	}

	if r.Features == nil {
		r.Features = []string{}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// StatusesResponse maps each room status to its display label.
type StatusesResponse map[string]string

func NewStatusesResponse() StatusesResponse {
	res := StatusesResponse{}
	for _, status := range model.Statuses {
		res[string(status)] = status.Label()
	}

	return res
}
