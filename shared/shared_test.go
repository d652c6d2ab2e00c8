package shared_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roomstack/shared"
	cacheMocks "roomstack/shared/cache/mocks"
	"roomstack/shared/constant"
	"roomstack/shared/dto"
	"roomstack/shared/failure"
)

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "positive number", input: "3", expected: intPtr(3)},
		{name: "negative number", input: "-2", expected: intPtr(-2)},
		{name: "not a number", input: "two", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToInt(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "exact division", total: 30, limit: 10, expected: 3},
		{name: "remainder rounds up", total: 31, limit: 10, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name         string `db:"name"`
		Email        string `db:"email"`
		Phone        string `db:"phone"`
		CurrentGuest *bool  `db:"current_guest"`
		Ignored      string `db:"-"`
		NoTag        string
	}

	guest := false

	result := shared.TransformFields(updateRequest{
		Name:         "Ann",
		CurrentGuest: &guest,
		Ignored:      "x",
		NoTag:        "y",
	}, "front-desk")

	assert.Equal(t, "Ann", result["name"])
	assert.Equal(t, &guest, result["current_guest"])
	assert.NotContains(t, result, "email")
	assert.NotContains(t, result, "phone")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "front-desk", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("123", "id", "rooms")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "123"}, args)
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID("0B5A3F1E-6C1D-4D6B-9A53-2F3E4B5C6D7E", "room")
	assert.NoError(t, err)
	assert.Equal(t, "0b5a3f1e-6c1d-4d6b-9a53-2f3e4b5c6d7e", id)

	for _, raw := range []string{"", "abc", "123", "0b5a3f1e-6c1d-4d6b-9a53"} {
		_, err = shared.ParseID(raw, "room")
		assert.True(t, failure.IsCode(err, http.StatusNotFound), raw)
		assert.EqualError(t, err, "room not found")
	}

	assert.True(t, shared.IsID("0b5a3f1e-6c1d-4d6b-9a53-2f3e4b5c6d7e"))
	assert.False(t, shared.IsID("abc"))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "limiter:1.2.3.4:curl", shared.BuildCacheKey("limiter", "1.2.3.4", "curl"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	first := dto.NewFilterGroup(dto.FilterGroupOperatorAnd,
		dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
	)
	same := dto.NewFilterGroup(dto.FilterGroupOperatorAnd,
		dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
	)
	other := dto.NewFilterGroup(dto.FilterGroupOperatorAnd,
		dto.Filter{Field: "status", Value: "occupied", Operator: dto.FilterOperatorEq},
	)

	key := shared.BuildCacheKeyWithQuery("room:gets", params, first)

	assert.True(t, strings.HasPrefix(key, "room:gets:"))
	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("room:gets", params, same))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("room:gets", params, other))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, first))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func TestActor(t *testing.T) {
	assert.Equal(t, constant.ContextSystem, shared.Actor(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "front-desk")
	assert.Equal(t, "front-desk", shared.Actor(ctx))
}
