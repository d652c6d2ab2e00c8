package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomstack/config"
	"roomstack/infras/kafka"
	kafkaMocks "roomstack/infras/kafka/mocks"
	otelMocks "roomstack/infras/otel/mocks"
	billMocks "roomstack/internal/domains/bill/mocks"
	billModel "roomstack/internal/domains/bill/model"
	bookingMocks "roomstack/internal/domains/booking/mocks"
	"roomstack/internal/domains/booking/model"
	"roomstack/internal/domains/booking/model/dto"
	"roomstack/internal/domains/booking/service"
	customerMocks "roomstack/internal/domains/customer/mocks"
	roomMocks "roomstack/internal/domains/room/mocks"
	roomModel "roomstack/internal/domains/room/model"
	"roomstack/shared/cache"
	cacheMocks "roomstack/shared/cache/mocks"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
)

// transactor runs the unit of work without a database and remembers how it ended.
type transactor struct {
	calls int
	err   error
}

func (tr *transactor) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	tr.calls++
	tr.err = fn(nil)

	return tr.err
}

type fixture struct {
	repo      *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoom
	customers *customerMocks.MockCustomer
	bills     *billMocks.MockBill
	tx        *transactor
	events    []model.LifecycleEvent
	settled   chan struct{}
	svc       service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		customers: customerMocks.NewMockCustomer(ctrl),
		bills:     billMocks.NewMockBill(ctrl),
		tx:        &transactor{},
		settled:   make(chan struct{}, 8),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, any, int) error {
			f.settled <- struct{}{}

			return nil
		}).
		AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			// room counts are the last prefix a write invalidates
			if pattern == constant.CacheKeyRoomCount+constant.Asterix {
				f.settled <- struct{}{}
			}

			return nil
		}).
		AnyTimes()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "roomstack.bookings", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			for _, message := range messages {
				event, ok := message.Value.(model.LifecycleEvent)
				require.True(t, ok)
				assert.Equal(t, event.BookingID, message.Key)

				f.events = append(f.events, event)
			}

			return nil
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic = "roomstack.bookings"

	f.svc = service.New(f.repo, f.rooms, f.customers, f.bills, f.tx, cfg, mockCache, mockKafka, otelMocks.NewOtel())

	return f
}

// wait blocks until n background cache writes or invalidations have finished.
func (f *fixture) wait(t *testing.T, n int) {
	t.Helper()

	for range n {
		select {
		case <-f.settled:
		case <-time.After(time.Second):
			t.Fatal("background cache work did not finish")
		}
	}
}

func room(status roomModel.Status) roomModel.Room {
	return roomModel.Room{
		ID:          "room-1",
		Number:      "101",
		NightlyRate: decimal.RequireFromString("100.00"),
		Status:      status,
	}
}

func booking(status model.Status) model.Booking {
	return model.Booking{
		ID:         "booking-1",
		RoomID:     "room-1",
		CustomerID: "customer-1",
		CheckIn:    time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC),
		Adults:     2,
		Status:     status,
	}
}

// expectRoomStatus asserts the room row is written with exactly the given status.
func (f *fixture) expectRoomStatus(t *testing.T, want roomModel.Status) {
	t.Helper()

	f.rooms.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, want, fields[roomModel.FieldStatus])
			assert.Contains(t, fields, constant.FieldModifiedBy)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "room-1", args[roomModel.FieldID])

			return nil
		})
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		CheckIn:  "2024-01-01T14:00:00Z",
		CheckOut: "2024-01-02T11:00:00Z",
		Adults:   2,
	}

	t.Run("books the room and issues a pending bill", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").Return(false, nil)
		f.expectRoomStatus(t, roomModel.StatusOccupied)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.Equal(t, model.StatusConfirmed, b.Status)
				assert.Equal(t, "customer-1", b.CustomerID)

				return nil
			})
		f.bills.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, bill billModel.Bill) error {
				assert.Equal(t, "100.00", bill.RoomCharge.StringFixed(2))
				assert.Equal(t, "10.00", bill.TaxAmount.StringFixed(2))
				assert.Equal(t, "110.00", bill.TotalAmount.StringFixed(2))
				assert.Equal(t, billModel.PaymentStatusPending, bill.PaymentStatus)

				return nil
			})

		res, err := f.svc.Create(context.Background(), req, "room-1", "customer-1")
		f.wait(t, 1)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
		require.NotNil(t, res.Bill)
		assert.Equal(t, res.ID, res.Bill.BookingID)
		assert.Equal(t, "110.00", res.Bill.TotalAmount)
		assert.Equal(t, "pending", res.Bill.PaymentStatus)

		require.Len(t, f.events, 1)
		assert.Equal(t, constant.EventBookingCreated, f.events[0].Event)
		assert.Equal(t, roomModel.StatusOccupied, f.events[0].RoomStatus)
	})

	t.Run("room already occupied is not rewritten", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusOccupied), nil)
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.bills.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(context.Background(), req, "room-1", "customer-1")
		f.wait(t, 1)

		assert.NoError(t, err)
	})

	t.Run("unknown customer writes nothing", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), req, "room-1", "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Zero(t, f.tx.calls)
		assert.Empty(t, f.events)
	})

	t.Run("customer removed before the insert", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.expectRoomStatus(t, roomModel.StatusOccupied)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23503"}))

		_, err := f.svc.Create(context.Background(), req, "room-1", "customer-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "customer not found")
		assert.Error(t, f.tx.err)
		assert.Empty(t, f.events)
	})

	t.Run("unknown room rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(context.Background(), req, "missing", "customer-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Error(t, f.tx.err)
		assert.Empty(t, f.events)
	})

	t.Run("overlapping stay is a conflict", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusReserved), nil)
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), req, "room-1", "customer-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Empty(t, f.events)
	})

	t.Run("bill failure rolls the booking back", func(t *testing.T) {
		f := newFixture(t)

		f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.expectRoomStatus(t, roomModel.StatusOccupied)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.bills.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(context.Background(), req, "room-1", "customer-1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, f.tx.err, "failed to create bill")
		assert.Empty(t, f.events)
	})

	t.Run("check in after check out", func(t *testing.T) {
		f := newFixture(t)

		bad := req
		bad.CheckIn, bad.CheckOut = req.CheckOut, req.CheckIn

		_, err := f.svc.Create(context.Background(), bad, "room-1", "customer-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Zero(t, f.tx.calls)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Status
		room     roomModel.Status
		next     string
		wantRoom roomModel.Status
	}{
		{"check in occupies a reserved room", model.StatusConfirmed, roomModel.StatusReserved, "checked_in", roomModel.StatusOccupied},
		{"check out frees the room", model.StatusCheckedIn, roomModel.StatusOccupied, "checked_out", roomModel.StatusAvailable},
		{"cancel frees the room", model.StatusConfirmed, roomModel.StatusOccupied, "cancelled", roomModel.StatusAvailable},
		{"confirm reserves the room", model.StatusConfirmed, roomModel.StatusOccupied, "confirmed", roomModel.StatusReserved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(tt.current), nil)
			f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(tt.room), nil)
			f.repo.EXPECT().
				UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.Status(tt.next), fields[model.FieldStatus])

					return nil
				})
			f.expectRoomStatus(t, tt.wantRoom)
			f.bills.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (billModel.Bill, error) {
					_, args := filter.GetWhereClause()
					assert.Equal(t, "booking-1", args[billModel.FieldBookingID])

					return billModel.Bill{ID: "bill-1", BookingID: "booking-1", PaymentStatus: billModel.PaymentStatusPending}, nil
				})

			res, err := f.svc.UpdateStatus(context.Background(), "booking-1", tt.next)
			f.wait(t, 1)

			require.NoError(t, err)
			assert.Equal(t, tt.next, res.Status)
			require.NotNil(t, res.Bill)
			assert.Equal(t, "bill-1", res.Bill.ID)
			require.Len(t, f.events, 1)
			assert.Equal(t, constant.EventBookingStatusChanged, f.events[0].Event)
			assert.Equal(t, tt.current, f.events[0].PreviousStatus)
			assert.Equal(t, tt.wantRoom, f.events[0].RoomStatus)
		})
	}

	t.Run("committed change survives a failed bill read", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusReserved), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectRoomStatus(t, roomModel.StatusOccupied)
		f.bills.EXPECT().Get(gomock.Any(), gomock.Any()).Return(billModel.Bill{}, errors.New("connection reset"))

		res, err := f.svc.UpdateStatus(context.Background(), "booking-1", "checked_in")
		f.wait(t, 1)

		require.NoError(t, err)
		assert.Equal(t, "checked_in", res.Status)
		assert.Nil(t, res.Bill)
	})

	t.Run("unknown status writes nothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(context.Background(), "booking-1", "archived")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Zero(t, f.tx.calls)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.UpdateStatus(context.Background(), "missing", "checked_in")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("reviving a cancelled booking whose dates were taken", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(model.StatusCancelled), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusOccupied), nil)
		f.repo.EXPECT().
			HasOverlapTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "booking-1").
			Return(true, nil)

		_, err := f.svc.UpdateStatus(context.Background(), "booking-1", "confirmed")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Empty(t, f.events)
	})

	t.Run("room write failure rolls the booking back", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusReserved), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.UpdateStatus(context.Background(), "booking-1", "checked_in")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, f.tx.err, "failed to update room status")
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("active booking frees the room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusOccupied), nil)
		f.expectRoomStatus(t, roomModel.StatusAvailable)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(context.Background(), "booking-1")
		f.wait(t, 1)

		require.NoError(t, err)
		require.Len(t, f.events, 1)
		assert.Equal(t, constant.EventBookingDeleted, f.events[0].Event)
	})

	t.Run("checked out booking leaves the room alone", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(model.StatusCheckedOut), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusOccupied), nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(context.Background(), "booking-1")
		f.wait(t, 1)

		require.NoError(t, err)
		require.Len(t, f.events, 1)
		assert.Equal(t, roomModel.StatusOccupied, f.events[0].RoomStatus)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Empty(t, f.events)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("includes the bill", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
		f.bills.EXPECT().Get(gomock.Any(), gomock.Any()).Return(billModel.Bill{
			ID:            "bill-1",
			BookingID:     "booking-1",
			TotalAmount:   decimal.RequireFromString("110"),
			PaymentStatus: billModel.PaymentStatusPaid,
		}, nil)

		res, err := f.svc.Get(context.Background(), "booking-1")
		f.wait(t, 1)

		require.NoError(t, err)
		require.NotNil(t, res.Bill)
		assert.Equal(t, "110.00", res.Bill.TotalAmount)
		assert.Equal(t, "Fully Paid", res.Bill.PaymentStatusLabel)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter, err := dto.ListFilter("confirmed", "3f2b8c1e-7a4d-4e5f-9b6a-1c2d3e4f5a6b", "9d7c6b5a-4e3f-4a2b-8c1d-0e9f8a7b6c5d")
	require.NoError(t, err)

	f.repo.EXPECT().Count(gomock.Any(), filter).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Booking{booking(model.StatusConfirmed)}, nil)

	res, err := f.svc.GetAll(context.Background(), params, filter)
	f.wait(t, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, "Confirmed", res.Bookings[0].StatusLabel)
}

func TestBookingService_IsAvailable(t *testing.T) {
	checkIn := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 6, 11, 0, 0, 0, time.UTC)

	t.Run("an overlapping booking makes the room unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().HasOverlap(gomock.Any(), "room-1", checkIn, checkOut, "").Return(true, nil)

		available, err := f.svc.IsAvailable(context.Background(), "room-1", checkIn, checkOut, "")

		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("free dates", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().HasOverlap(gomock.Any(), "room-1", checkIn, checkOut, "booking-1").Return(false, nil)

		available, err := f.svc.IsAvailable(context.Background(), "room-1", checkIn, checkOut, "booking-1")

		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("empty range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.IsAvailable(context.Background(), "room-1", checkIn, checkIn, "")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Statuses(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Cancelled", f.svc.Statuses()["cancelled"])
}
