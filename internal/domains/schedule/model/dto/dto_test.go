package dto_test

import (
	"testing"
	"time"

	"bizdesk/internal/domains/schedule/model"
	"bizdesk/internal/domains/schedule/model/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		ServiceID:  "service-1",
		EmployeeID: "employee-1",
		CustomerID: "customer-1",
		StartTime:  "2024-06-10T09:00:00Z",
		EndTime:    "2024-06-10T09:30:00Z",
	}

	userID := "test-user-id"
	now := timezone.Now()

	appointment, err := req.ToModel(userID, now)
	assert.NoError(t, err)

	assert.NotEmpty(t, appointment.ID, "expected ID to be generated")
	assert.Equal(t, req.ServiceID, appointment.ServiceID)
	assert.Equal(t, req.EmployeeID, appointment.EmployeeID)
	assert.Equal(t, req.CustomerID, appointment.CustomerID)
	assert.Equal(t, model.StatusScheduled, appointment.Status)
	assert.True(t, appointment.EndTime.After(appointment.StartTime))
	assert.Equal(t, 30*time.Minute, appointment.EndTime.Sub(appointment.StartTime))
	assert.Equal(t, userID, appointment.CreatedBy)
	assert.Equal(t, userID, appointment.ModifiedBy)
	assert.Equal(t, now, appointment.CreatedAt)
	assert.Equal(t, now, appointment.ModifiedAt)
}

func TestCreateAppointmentRequest_ToModelInvalidTime(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		ServiceID:  "service-1",
		EmployeeID: "employee-1",
		CustomerID: "customer-1",
		StartTime:  "not-a-timestamp",
		EndTime:    "2024-06-10T09:30:00Z",
	}

	_, err := req.ToModel("test-user-id", timezone.Now())
	assert.Error(t, err)
}

func TestUpdateAppointmentRequest_Empty(t *testing.T) {
	empty := dto.UpdateAppointmentRequest{}
	assert.True(t, empty.Empty())

	notes := "bring paperwork"
	withNotes := dto.UpdateAppointmentRequest{Notes: &notes}
	assert.False(t, withNotes.Empty())

	withTime := dto.UpdateAppointmentRequest{StartTime: "2024-06-10T09:00:00Z"}
	assert.False(t, withTime.Empty())
}

func TestCreateRecurringRequest_Template(t *testing.T) {
	notes := "weekly trim"
	req := dto.CreateRecurringRequest{
		ServiceID:  "service-1",
		EmployeeID: "employee-1",
		CustomerID: "customer-1",
		StartTime:  "2024-01-01T09:00:00Z",
		EndTime:    "2024-01-01T09:30:00Z",
		Notes:      &notes,
		Frequency:  "WEEKLY",
	}

	template := req.Template()

	assert.Equal(t, req.ServiceID, template.ServiceID)
	assert.Equal(t, req.EmployeeID, template.EmployeeID)
	assert.Equal(t, req.CustomerID, template.CustomerID)
	assert.Equal(t, req.StartTime, template.StartTime)
	assert.Equal(t, req.EndTime, template.EndTime)
	assert.Equal(t, req.Notes, template.Notes)
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	checkIn := now.Add(-45 * time.Minute)
	duration := 45
	pattern := "WEEKLY"

	appointment := model.Appointment{
		ID:                    "test-id",
		ServiceID:             "service-1",
		EmployeeID:            "employee-1",
		CustomerID:            "customer-1",
		StartTime:             now.Add(-time.Hour),
		EndTime:               now,
		Status:                model.StatusInProgress,
		IsRecurring:           true,
		RecurrencePattern:     &pattern,
		CheckInTime:           &checkIn,
		ActualDurationMinutes: &duration,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment)

	assert.Equal(t, appointment.ID, response.ID)
	assert.Equal(t, appointment.ServiceID, response.ServiceID)
	assert.Equal(t, appointment.EmployeeID, response.EmployeeID)
	assert.Equal(t, appointment.CustomerID, response.CustomerID)
	assert.Equal(t, string(model.StatusInProgress), response.Status)
	assert.True(t, response.IsRecurring)
	assert.NotNil(t, response.RecurrencePattern)
	assert.Equal(t, pattern, *response.RecurrencePattern)
	assert.NotNil(t, response.CheckInTime)
	assert.NotNil(t, response.ActualDurationMinutes)
	assert.Equal(t, duration, *response.ActualDurationMinutes)
	assert.Nil(t, response.CheckOutTime)
	assert.Nil(t, response.CancelledAt)
}

func TestRecurringSeriesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	appointments := []model.Appointment{
		{ID: "a-1", StartTime: now, EndTime: now.Add(30 * time.Minute), Status: model.StatusScheduled},
		{ID: "a-2", StartTime: now.AddDate(0, 0, 7), EndTime: now.AddDate(0, 0, 7).Add(30 * time.Minute), Status: model.StatusScheduled},
	}

	var response dto.RecurringSeriesResponse
	response.FromModels(appointments, 5)

	assert.Equal(t, 5, response.Requested)
	assert.Equal(t, 2, response.Created)
	assert.Len(t, response.Appointments, 2)
	assert.Equal(t, "a-1", response.Appointments[0].ID)
	assert.Equal(t, "a-2", response.Appointments[1].ID)
}
