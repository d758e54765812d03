package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bizdesk/config"
	"bizdesk/infras/otel/mocks"
	catalogMocks "bizdesk/internal/domains/catalog/mocks"
	customerMocks "bizdesk/internal/domains/customer/mocks"
	employeeMocks "bizdesk/internal/domains/employee/mocks"
	eventMocks "bizdesk/internal/domains/schedule/event/mocks"
	scheduleMocks "bizdesk/internal/domains/schedule/mocks"
	"bizdesk/internal/domains/schedule/model"
	"bizdesk/internal/domains/schedule/model/dto"
	"bizdesk/internal/domains/schedule/service"
	cacheMocks "bizdesk/shared/cache/mocks"
	"bizdesk/shared/clock"
	"bizdesk/shared/constant"
	"bizdesk/shared/failure"
	gModel "bizdesk/shared/model"
)

type fixture struct {
	repo     *scheduleMocks.MockSchedule
	catalog  *catalogMocks.MockCatalog
	employee *employeeMocks.MockEmployee
	customer *customerMocks.MockCustomer
	events   *eventMocks.MockPublisher
	cache    *cacheMocks.MockRedisCache
	svc      service.Schedule
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     scheduleMocks.NewMockSchedule(ctrl),
		catalog:  catalogMocks.NewMockCatalog(ctrl),
		employee: employeeMocks.NewMockEmployee(ctrl),
		customer: customerMocks.NewMockCustomer(ctrl),
		events:   eventMocks.NewMockPublisher(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		now:      time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f.svc = service.New(f.repo, f.catalog, f.employee, f.customer, f.events, cfg, f.cache, mocks.NewOtel(), clock.Fixed(f.now))

	return f
}

func (f *fixture) expectReferencesResolve() {
	f.catalog.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.customer.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func scheduled(id string, start, end time.Time) model.Appointment {
	return model.Appointment{
		ID:         id,
		ServiceID:  "service-1",
		EmployeeID: "employee-1",
		CustomerID: "customer-1",
		StartTime:  start,
		EndTime:    end,
		Status:     model.StatusScheduled,
		Metadata: gModel.Metadata{
			CreatedAt:  start.Add(-24 * time.Hour),
			ModifiedAt: start.Add(-24 * time.Hour),
			CreatedBy:  "test-user-id",
			ModifiedBy: "test-user-id",
		},
	}
}

func TestScheduleService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()
		f.repo.EXPECT().InsertBooked(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(testCtx(), dto.CreateAppointmentRequest{
			ServiceID:  "service-1",
			EmployeeID: "employee-1",
			CustomerID: "customer-1",
			StartTime:  "2024-06-10T10:00:00Z",
			EndTime:    "2024-06-10T11:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusScheduled), res.Status)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("start not before end is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()

		_, err := f.svc.Create(testCtx(), dto.CreateAppointmentRequest{
			ServiceID:  "service-1",
			EmployeeID: "employee-1",
			CustomerID: "customer-1",
			StartTime:  "2024-06-10T11:00:00Z",
			EndTime:    "2024-06-10T11:00:00Z",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown service id", func(t *testing.T) {
		f := newFixture(t)
		f.catalog.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(testCtx(), dto.CreateAppointmentRequest{
			ServiceID:  "missing",
			EmployeeID: "employee-1",
			CustomerID: "customer-1",
			StartTime:  "2024-06-10T10:00:00Z",
			EndTime:    "2024-06-10T11:00:00Z",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("overlapping window conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()
		f.repo.EXPECT().InsertBooked(gomock.Any(), gomock.Any()).
			Return(failure.Conflict("appointment overlaps an existing booking for this employee"))

		_, err := f.svc.Create(testCtx(), dto.CreateAppointmentRequest{
			ServiceID:  "service-1",
			EmployeeID: "employee-1",
			CustomerID: "customer-1",
			StartTime:  "2024-06-10T10:30:00Z",
			EndTime:    "2024-06-10T11:30:00Z",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestScheduleService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		_, err := f.svc.Get(testCtx(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestScheduleService_UpdateStatus(t *testing.T) {
	start := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)

	t.Run("confirm scheduled appointment", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.UpdateStatus(testCtx(), dto.UpdateStatusRequest{Status: "CONFIRMED"}, "appt-1", "actor-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
	})

	t.Run("illegal transition leaves record unchanged", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))
		appointment.Status = model.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.UpdateStatus(testCtx(), dto.UpdateStatusRequest{Status: "CONFIRMED"}, "appt-1", "actor-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("completed only through check-out", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))
		appointment.Status = model.StatusInProgress

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.UpdateStatus(testCtx(), dto.UpdateStatusRequest{Status: "COMPLETED"}, "appt-1", "actor-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("cancellation requires reason", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.UpdateStatus(testCtx(), dto.UpdateStatusRequest{Status: "CANCELLED"}, "appt-1", "actor-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cancellation stamps reason actor and instant", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "double booked", fields[model.FieldCancellationReason])
				assert.Equal(t, "actor-1", fields[model.FieldCancelledByID])
				assert.Equal(t, f.now, fields[model.FieldCancelledAt])
				return nil
			})

		res, err := f.svc.UpdateStatus(testCtx(), dto.UpdateStatusRequest{Status: "CANCELLED", Reason: "double booked"}, "appt-1", "actor-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
		require.NotNil(t, res.CancelledByID)
		assert.Equal(t, "actor-1", *res.CancelledByID)
	})
}

func TestScheduleService_CheckIn(t *testing.T) {
	start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	t.Run("check in from scheduled", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.CheckIn(testCtx(), "appt-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusInProgress), res.Status)
		assert.NotNil(t, res.CheckInTime)
	})

	t.Run("cancelled appointment cannot check in", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))
		appointment.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.CheckIn(testCtx(), "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestScheduleService_CheckOut(t *testing.T) {
	t.Run("records truncated whole minutes", func(t *testing.T) {
		f := newFixture(t)

		checkIn := f.now.Add(-45*time.Minute - 30*time.Second)
		appointment := scheduled("appt-1", f.now.Add(-time.Hour), f.now)
		appointment.Status = model.StatusInProgress
		appointment.CheckInTime = &checkIn

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, 45, fields[model.FieldActualDurationMinutes])
				return nil
			})

		res, err := f.svc.CheckOut(testCtx(), dto.CheckOutRequest{}, "appt-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCompleted), res.Status)
		require.NotNil(t, res.ActualDurationMinutes)
		assert.Equal(t, 45, *res.ActualDurationMinutes)
	})

	t.Run("only in progress can check out", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now, f.now.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.CheckOut(testCtx(), dto.CheckOutRequest{}, "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestScheduleService_RecordPayment(t *testing.T) {
	t.Run("second payment is rejected", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now, f.now.Add(time.Hour))
		appointment.Paid = true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.RecordPayment(testCtx(), dto.RecordPaymentRequest{Amount: 50, Method: "CASH"}, "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("first payment stamps all fields", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now, f.now.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldPaid])
				assert.Equal(t, 50.0, fields[model.FieldPaymentAmount])
				assert.Equal(t, "CARD", fields[model.FieldPaymentMethod])
				assert.Equal(t, f.now, fields[model.FieldPaymentDate])
				return nil
			})

		res, err := f.svc.RecordPayment(testCtx(), dto.RecordPaymentRequest{Amount: 50, Method: "CARD"}, "appt-1")

		require.NoError(t, err)
		assert.True(t, res.Paid)
	})
}

func TestScheduleService_CreateRecurring(t *testing.T) {
	t.Run("weekly series of three", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()

		count := 3
		starts := []time.Time{}

		f.repo.EXPECT().InsertBooked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, appointment model.Appointment) error {
				starts = append(starts, appointment.StartTime)
				assert.True(t, appointment.IsRecurring)
				return nil
			}).Times(3)

		res, err := f.svc.CreateRecurring(testCtx(), dto.CreateRecurringRequest{
			ServiceID:       "service-1",
			EmployeeID:      "employee-1",
			CustomerID:      "customer-1",
			StartTime:       "2024-01-01T09:00:00Z",
			EndTime:         "2024-01-01T09:30:00Z",
			Frequency:       "WEEKLY",
			OccurrenceCount: &count,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Requested)
		assert.Equal(t, 3, res.Created)
		require.Len(t, starts, 3)
		assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), starts[1].UTC())
		assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), starts[2].UTC())
	})

	t.Run("conflict cuts series short without failing", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()

		count := 3
		calls := 0

		f.repo.EXPECT().InsertBooked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Appointment) error {
				calls++
				if calls == 2 {
					return failure.Conflict("appointment overlaps an existing booking for this employee")
				}
				return nil
			}).Times(2)

		res, err := f.svc.CreateRecurring(testCtx(), dto.CreateRecurringRequest{
			ServiceID:       "service-1",
			EmployeeID:      "employee-1",
			CustomerID:      "customer-1",
			StartTime:       "2024-01-01T09:00:00Z",
			EndTime:         "2024-01-01T09:30:00Z",
			Frequency:       "DAILY",
			OccurrenceCount: &count,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Requested)
		assert.Equal(t, 1, res.Created)
	})

	t.Run("missing termination rule", func(t *testing.T) {
		f := newFixture(t)
		f.expectReferencesResolve()

		_, err := f.svc.CreateRecurring(testCtx(), dto.CreateRecurringRequest{
			ServiceID:  "service-1",
			EmployeeID: "employee-1",
			CustomerID: "customer-1",
			StartTime:  "2024-01-01T09:00:00Z",
			EndTime:    "2024-01-01T09:30:00Z",
			Frequency:  "DAILY",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestScheduleService_CancelSeries(t *testing.T) {
	pattern := "WEEKLY"

	t.Run("anchor must be recurring", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.CancelSeries(testCtx(), dto.CancelSeriesRequest{Reason: "closing"}, "appt-1", "actor-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("cancels only future cancellable members", func(t *testing.T) {
		f := newFixture(t)

		anchor := scheduled("appt-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour))
		anchor.IsRecurring = true
		anchor.RecurrencePattern = &pattern

		past := scheduled("appt-0", f.now.Add(-time.Hour), f.now)
		past.IsRecurring = true
		past.RecurrencePattern = &pattern

		terminal := scheduled("appt-2", f.now.Add(24*time.Hour), f.now.Add(25*time.Hour))
		terminal.IsRecurring = true
		terminal.RecurrencePattern = &pattern
		terminal.Status = model.StatusCompleted

		future := scheduled("appt-3", f.now.Add(48*time.Hour), f.now.Add(49*time.Hour))
		future.IsRecurring = true
		future.RecurrencePattern = &pattern

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(anchor, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{past, anchor, terminal, future}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.CancelSeries(testCtx(), dto.CancelSeriesRequest{Reason: "closing"}, "appt-1", "actor-1")

		require.NoError(t, err)
		assert.Equal(t, 2, res.Cancelled)
	})
}

func TestScheduleService_Update(t *testing.T) {
	start := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)

	t.Run("reschedule reruns conflict check excluding self", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().UpdateBooked(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated model.Appointment, fields map[string]any) error {
				assert.Equal(t, "appt-1", updated.ID)
				assert.Contains(t, fields, model.FieldStartTime)
				assert.Contains(t, fields, model.FieldEndTime)
				return nil
			})

		res, err := f.svc.Update(testCtx(), dto.UpdateAppointmentRequest{
			StartTime: "2024-06-11T12:00:00Z",
			EndTime:   "2024-06-11T13:00:00Z",
		}, "appt-1")

		require.NoError(t, err)
		assert.Equal(t, "appt-1", res.ID)
	})

	t.Run("terminal appointment cannot be modified", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", start, start.Add(time.Hour))
		appointment.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		_, err := f.svc.Update(testCtx(), dto.UpdateAppointmentRequest{
			StartTime: "2024-06-11T12:00:00Z",
			EndTime:   "2024-06-11T13:00:00Z",
		}, "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("empty update request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(testCtx(), dto.UpdateAppointmentRequest{}, "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestScheduleService_Delete(t *testing.T) {
	t.Run("in progress appointment cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now, f.now.Add(time.Hour))
		appointment.Status = model.StatusInProgress

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		err := f.svc.Delete(testCtx(), "appt-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("scheduled appointment deletes", func(t *testing.T) {
		f := newFixture(t)
		appointment := scheduled("appt-1", f.now, f.now.Add(time.Hour))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(testCtx(), "appt-1")

		require.NoError(t, err)
	})
}
