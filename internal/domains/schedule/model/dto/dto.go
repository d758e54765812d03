package dto

import (
	"time"

	"github.com/google/uuid"

	"bizdesk/internal/domains/schedule/model"
	"bizdesk/shared"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

type CreateAppointmentRequest struct {
	ServiceID  string  `json:"service_id"  validate:"required"`
	EmployeeID string  `json:"employee_id" validate:"required"`
	CustomerID string  `json:"customer_id" validate:"required"`
	StartTime  string  `json:"start_time"  validate:"required"`
	EndTime    string  `json:"end_time"    validate:"required"`
	Notes      *string `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateAppointmentRequest) ToModel(user string, now time.Time) (model.Appointment, error) {
	startTime, err := timezone.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Appointment{}, err
	}

	endTime, err := timezone.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Appointment{}, err
	}

	return model.Appointment{
		ID:         uuid.NewString(),
		ServiceID:  c.ServiceID,
		EmployeeID: c.EmployeeID,
		CustomerID: c.CustomerID,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     model.StatusScheduled,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateAppointmentRequest struct {
	ServiceID  string  `json:"service_id"  validate:"omitempty"`
	EmployeeID string  `json:"employee_id" validate:"omitempty"`
	StartTime  string  `json:"start_time"  validate:"omitempty"`
	EndTime    string  `json:"end_time"    validate:"omitempty"`
	Notes      *string `json:"notes"       validate:"omitempty,max=500"`
}

func (u *UpdateAppointmentRequest) Empty() bool {
	return u.ServiceID == "" && u.EmployeeID == "" && u.StartTime == "" && u.EndTime == "" && u.Notes == nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Feedback *string `json:"feedback" validate:"omitempty,max=1000"`
	Rating   *int    `json:"rating"   validate:"omitempty,min=1,max=5"`
}

type RecordPaymentRequest struct {
	Amount    float64 `json:"amount"    validate:"required,gt=0"`
	Method    string  `json:"method"    validate:"required,max=50"`
	Reference *string `json:"reference" validate:"omitempty,max=100"`
}

type CreateRecurringRequest struct {
	ServiceID       string  `json:"service_id"       validate:"required"`
	EmployeeID      string  `json:"employee_id"      validate:"required"`
	CustomerID      string  `json:"customer_id"      validate:"required"`
	StartTime       string  `json:"start_time"       validate:"required"`
	EndTime         string  `json:"end_time"         validate:"required"`
	Notes           *string `json:"notes"            validate:"omitempty,max=500"`
	Frequency       string  `json:"frequency"        validate:"required,oneof=DAILY WEEKLY MONTHLY"`
	OccurrenceCount *int    `json:"occurrence_count" validate:"omitempty,min=1,max=100"`
	EndDate         *string `json:"end_date"         validate:"omitempty"`
}

func (c *CreateRecurringRequest) Template() CreateAppointmentRequest {
	return CreateAppointmentRequest{
		ServiceID:  c.ServiceID,
		EmployeeID: c.EmployeeID,
		CustomerID: c.CustomerID,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		Notes:      c.Notes,
	}
}

type CancelSeriesRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AppointmentResponse struct {
	ID                    string   `json:"id"`
	ServiceID             string   `json:"service_id"`
	EmployeeID            string   `json:"employee_id"`
	CustomerID            string   `json:"customer_id"`
	StartTime             string   `json:"start_time"`
	EndTime               string   `json:"end_time"`
	Status                string   `json:"status"`
	Notes                 *string  `json:"notes,omitempty"`
	IsRecurring           bool     `json:"is_recurring"`
	RecurrencePattern     *string  `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate     *string  `json:"recurrence_end_date,omitempty"`
	CancellationReason    *string  `json:"cancellation_reason,omitempty"`
	CancelledByID         *string  `json:"cancelled_by_id,omitempty"`
	CancelledAt           *string  `json:"cancelled_at,omitempty"`
	CheckInTime           *string  `json:"check_in_time,omitempty"`
	CheckOutTime          *string  `json:"check_out_time,omitempty"`
	ActualDurationMinutes *int     `json:"actual_duration_minutes,omitempty"`
	Feedback              *string  `json:"feedback,omitempty"`
	Rating                *int     `json:"rating,omitempty"`
	Paid                  bool     `json:"paid"`
	PaymentAmount         *float64 `json:"payment_amount,omitempty"`
	PaymentMethod         *string  `json:"payment_method,omitempty"`
	PaymentReference      *string  `json:"payment_reference,omitempty"`
	PaymentDate           *string  `json:"payment_date,omitempty"`
	gDto.Metadata
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, layout)

	return &formatted
}

func (r *AppointmentResponse) FromModel(mod model.Appointment) {
	r.ID = mod.ID
	r.ServiceID = mod.ServiceID
	r.EmployeeID = mod.EmployeeID
	r.CustomerID = mod.CustomerID
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
	r.Status = mod.Status.String()
	r.Notes = mod.Notes
	r.IsRecurring = mod.IsRecurring
	r.RecurrencePattern = mod.RecurrencePattern
	r.RecurrenceEndDate = formatTimePtr(mod.RecurrenceEndDate, constant.DateOnlyFormat)
	r.CancellationReason = mod.CancellationReason
	r.CancelledByID = mod.CancelledByID
	r.CancelledAt = formatTimePtr(mod.CancelledAt, constant.DateFormat)
	r.CheckInTime = formatTimePtr(mod.CheckInTime, constant.DateFormat)
	r.CheckOutTime = formatTimePtr(mod.CheckOutTime, constant.DateFormat)
	r.ActualDurationMinutes = mod.ActualDurationMinutes
	r.Feedback = mod.Feedback
	r.Rating = mod.Rating
	r.Paid = mod.Paid
	r.PaymentAmount = mod.PaymentAmount
	r.PaymentMethod = mod.PaymentMethod
	r.PaymentReference = mod.PaymentReference
	r.PaymentDate = formatTimePtr(mod.PaymentDate, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

type RecurringSeriesResponse struct {
	Requested    int                   `json:"requested"`
	Created      int                   `json:"created"`
	Appointments []AppointmentResponse `json:"appointments"`
}

func (r *RecurringSeriesResponse) FromModels(models []model.Appointment, requested int) {
	r.Requested = requested
	r.Created = len(models)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

type CancelSeriesResponse struct {
	Cancelled int `json:"cancelled"`
}
