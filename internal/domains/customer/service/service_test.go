package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "roomstack/infras/otel/mocks"
	customerMocks "roomstack/internal/domains/customer/mocks"
	"roomstack/internal/domains/customer/model"
	"roomstack/internal/domains/customer/model/dto"
	"roomstack/internal/domains/customer/service"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
)

func newService(t *testing.T) (*customerMocks.MockCustomer, service.Customer) {
	t.Helper()

	repo := customerMocks.NewMockCustomer(gomock.NewController(t))

	return repo, service.New(repo, otelMocks.NewOtel())
}

func TestCustomerService_Create(t *testing.T) {
	req := dto.CreateCustomerRequest{Name: "Ada Lovelace", Email: "Ada@Example.com"}

	tests := []struct {
		name     string
		setup    func(repo *customerMocks.MockCustomer)
		wantCode int
	}{
		{
			name: "created",
			setup: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "email already registered",
			setup: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert",
			setup: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "storage failure",
			setup: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newService(t)
			tt.setup(repo)

			res, err := svc.Create(context.Background(), req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", res.Email)
			assert.Equal(t, "system", res.CreatedBy)
		})
	}
}

func TestCustomerService_GetAll(t *testing.T) {
	repo, svc := newService(t)

	params := gDto.QueryParams{Page: 2, Limit: 1}
	filter := dto.SearchFilter("ada")

	repo.EXPECT().Count(gomock.Any(), filter).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Customer{{ID: "c-2", Name: "Ada"}}, nil)

	res, err := svc.GetAll(context.Background(), params, filter)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "c-2", res.Customers[0].ID)
}

func TestCustomerService_Get(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)

	_, err := svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCustomerService_Update(t *testing.T) {
	current := model.Customer{ID: "c-1", Name: "Ada", Email: "ada@example.com"}

	t.Run("unchanged email skips the uniqueness check", func(t *testing.T) {
		repo, svc := newService(t)

		guest := true
		updated := current
		updated.CurrentGuest = true

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil),
			repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, "ada@example.com", fields[model.FieldEmail])
					assert.Equal(t, &guest, fields[model.FieldCurrentGuest])

					return nil
				}),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)

		res, err := svc.Update(context.Background(), dto.UpdateCustomerRequest{Email: "ADA@example.com", CurrentGuest: &guest}, "c-1")

		require.NoError(t, err)
		assert.True(t, res.CurrentGuest)
	})

	t.Run("email owned by another customer", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Update(context.Background(), dto.UpdateCustomerRequest{Email: "grace@example.com"}, "c-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		_, svc := newService(t)

		_, err := svc.Update(context.Background(), dto.UpdateCustomerRequest{}, "c-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), "missing")))
	})

	t.Run("customer still has bookings", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Delete(context.Background(), "c-1")))
	})

	t.Run("deleted", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "c-1"))
	})
}
