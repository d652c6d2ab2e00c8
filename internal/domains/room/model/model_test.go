package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomstack/internal/domains/room/model"
)

func TestStatus_Valid(t *testing.T) {
	for _, status := range model.Statuses {
		assert.True(t, status.Valid(), status)
		assert.NotEqual(t, string(status), status.Label())
	}

	assert.False(t, model.Status("").Valid())
	assert.False(t, model.Status("cleaning").Valid())
	assert.Equal(t, "cleaning", model.Status("cleaning").Label())
}

func TestNewBeds(t *testing.T) {
	beds := model.NewBeds(nil)
	assert.NotNil(t, beds.Data())
	assert.Empty(t, beds.Data())

	beds = model.NewBeds(map[string]int{"queen": 1, "single": 2})
	assert.Equal(t, 2, beds.Data()["single"])

	raw, err := beds.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"queen":1,"single":2}`, string(raw))
}
