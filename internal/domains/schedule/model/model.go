package model

import (
	"time"

	"bizdesk/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID                    = "id"
	FieldServiceID             = "service_id"
	FieldEmployeeID            = "employee_id"
	FieldCustomerID            = "customer_id"
	FieldStartTime             = "start_time"
	FieldEndTime               = "end_time"
	FieldStatus                = "status"
	FieldNotes                 = "notes"
	FieldIsRecurring           = "is_recurring"
	FieldRecurrencePattern     = "recurrence_pattern"
	FieldRecurrenceEndDate     = "recurrence_end_date"
	FieldCancellationReason    = "cancellation_reason"
	FieldCancelledByID         = "cancelled_by_id"
	FieldCancelledAt           = "cancelled_at"
	FieldCheckInTime           = "check_in_time"
	FieldCheckOutTime          = "check_out_time"
	FieldActualDurationMinutes = "actual_duration_minutes"
	FieldFeedback              = "feedback"
	FieldRating                = "rating"
	FieldPaid                  = "paid"
	FieldPaymentAmount         = "payment_amount"
	FieldPaymentMethod         = "payment_method"
	FieldPaymentReference      = "payment_reference"
	FieldPaymentDate           = "payment_date"
)

type Appointment struct {
	ID                    string     `db:"id"`
	ServiceID             string     `db:"service_id"`
	EmployeeID            string     `db:"employee_id"`
	CustomerID            string     `db:"customer_id"`
	StartTime             time.Time  `db:"start_time"`
	EndTime               time.Time  `db:"end_time"`
	Status                Status     `db:"status"`
	Notes                 *string    `db:"notes"`
	IsRecurring           bool       `db:"is_recurring"`
	RecurrencePattern     *string    `db:"recurrence_pattern"`
	RecurrenceEndDate     *time.Time `db:"recurrence_end_date"`
	CancellationReason    *string    `db:"cancellation_reason"`
	CancelledByID         *string    `db:"cancelled_by_id"`
	CancelledAt           *time.Time `db:"cancelled_at"`
	CheckInTime           *time.Time `db:"check_in_time"`
	CheckOutTime          *time.Time `db:"check_out_time"`
	ActualDurationMinutes *int       `db:"actual_duration_minutes"`
	Feedback              *string    `db:"feedback"`
	Rating                *int       `db:"rating"`
	Paid                  bool       `db:"paid"`
	PaymentAmount         *float64   `db:"payment_amount"`
	PaymentMethod         *string    `db:"payment_method"`
	PaymentReference      *string    `db:"payment_reference"`
	PaymentDate           *time.Time `db:"payment_date"`
	model.Metadata
}
