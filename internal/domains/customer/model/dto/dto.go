package dto

import (
	"strings"

	"github.com/google/uuid"

	"roomstack/internal/domains/customer/model"
	"roomstack/shared"
	gDto "roomstack/shared/dto"
	gModel "roomstack/shared/model"
	"roomstack/shared/timezone"
)

type CreateCustomerRequest struct {
	Name         string `json:"name"          validate:"required,max=255"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Phone        string `json:"phone"         validate:"omitempty,max=30"`
	Address      string `json:"address"       validate:"omitempty,max=500"`
	CurrentGuest bool   `json:"current_guest"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Email:        NormalizeEmail(c.Email),
		Phone:        c.Phone,
		Address:      c.Address,
		CurrentGuest: c.CurrentGuest,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateCustomerRequest struct {
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=255"`
	Email        string `db:"email"         json:"email"         validate:"omitempty,email,max=255"`
	Phone        string `db:"phone"         json:"phone"         validate:"omitempty,max=30"`
	Address      string `db:"address"       json:"address"       validate:"omitempty,max=500"`
	CurrentGuest *bool  `db:"current_guest" json:"current_guest"`
}

func (u *UpdateCustomerRequest) IsEmpty() bool {
	return u.Name == "" && u.Email == "" && u.Phone == "" && u.Address == "" && u.CurrentGuest == nil
}

// NormalizeEmail lower-cases the address so uniqueness holds regardless of how it was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CurrentGuest bool   `json:"current_guest"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.CurrentGuest = model.CurrentGuest
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

// SearchFilter matches term against name, email or phone.
func SearchFilter(term string) gDto.FilterGroup {
	group := gDto.NewFilterGroup(gDto.FilterGroupOperatorOr)

	for _, field := range []string{model.FieldName, model.FieldEmail, model.FieldPhone} {
		group.Add(gDto.Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Value:    term,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	return group
}
