package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bizdesk/config"
	"bizdesk/infras/kafka"
	"bizdesk/infras/otel"
	"bizdesk/internal/domains/schedule/model"
	"bizdesk/shared/constant"
	"bizdesk/shared/timezone"
)

const (
	TypeCreated        = "appointment.created"
	TypeRescheduled    = "appointment.rescheduled"
	TypeStatusChanged  = "appointment.status_changed"
	TypeCheckedIn      = "appointment.checked_in"
	TypeCheckedOut     = "appointment.checked_out"
	TypePaymentRecd    = "appointment.payment_recorded"
	TypeDeleted        = "appointment.deleted"
	TypeSeriesCreated  = "appointment.series_created"
	TypeSeriesCancelld = "appointment.series_cancelled"
)

// AppointmentEvent is the payload published on every lifecycle change.
// Consumers (notification workers, reporting) key on AppointmentID.
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	ServiceID     string    `json:"service_id"`
	EmployeeID    string    `json:"employee_id"`
	CustomerID    string    `json:"customer_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, appointment model.Appointment)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// Publish emits a lifecycle event. Delivery is best effort: a broker
// failure is logged and traced but never fails the originating
// operation.
func (p *publisherImpl) Publish(ctx context.Context, eventType string, appointment model.Appointment) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttribute("event_type", eventType)

	payload := AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		ServiceID:     appointment.ServiceID,
		EmployeeID:    appointment.EmployeeID,
		CustomerID:    appointment.CustomerID,
		Status:        appointment.Status.String(),
		OccurredAt:    timezone.Now(),
	}

	message := kafka.Message{
		Key:   appointment.ID,
		Value: payload,
	}

	err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.AppointmentEvents, message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event_type", eventType).Str("appointment_id", appointment.ID).Msg("failed to publish appointment event")
	}
}
