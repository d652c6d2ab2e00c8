package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomstack/internal/domains/customer/model"
	"roomstack/internal/domains/customer/model/dto"
	"roomstack/shared"
)

func TestCreateCustomerRequest_ToModel(t *testing.T) {
	req := dto.CreateCustomerRequest{
		Name:  "Ada Lovelace",
		Email: "  Ada@Example.com ",
		Phone: "+44 20 7946 0000",
	}

	customer := req.ToModel("front-desk")

	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, "ada@example.com", customer.Email)
	assert.False(t, customer.CurrentGuest)
	assert.Equal(t, "front-desk", customer.ModifiedBy)
}

func TestUpdateCustomerRequest(t *testing.T) {
	empty := dto.UpdateCustomerRequest{}
	assert.True(t, empty.IsEmpty())

	guest := false
	req := dto.UpdateCustomerRequest{Phone: "555-0100", CurrentGuest: &guest}
	assert.False(t, req.IsEmpty())

	fields := shared.TransformFields(req, "front-desk")

	assert.Equal(t, "555-0100", fields[model.FieldPhone])
	assert.Equal(t, &guest, fields[model.FieldCurrentGuest])
	assert.NotContains(t, fields, model.FieldName)
	assert.Equal(t, "front-desk", fields["modified_by"])
}

func TestSearchFilter(t *testing.T) {
	group := dto.SearchFilter("ada")
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "LOWER(customers.name) LIKE LOWER(:search_name)")
	assert.Contains(t, where, " OR ")
	assert.Equal(t, "%ada%", args["search_email"])
	assert.Len(t, args, 3)

	group = dto.SearchFilter(`50%_off\`)
	_, args = group.GetWhereClause()

	assert.Equal(t, `%50\%\_off\\%`, args["search_name"])
}

func TestGetCustomersResponse_FromModels(t *testing.T) {
	var res dto.GetCustomersResponse
	res.FromModels([]model.Customer{{ID: "a", Name: "Ada"}}, 1, 10)

	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "Ada", res.Customers[0].Name)
}
