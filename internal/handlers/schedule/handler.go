package schedule

import (
	"net/http"

	"bizdesk/infras/otel"
	"bizdesk/internal/domains/schedule/model"
	"bizdesk/internal/domains/schedule/model/dto"
	"bizdesk/internal/domains/schedule/service"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	"bizdesk/shared/failure"
	"bizdesk/shared/validator"
	"bizdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/upcoming", handler.GetUpcomingAppointments)
		routerGroup.Get("/past", handler.GetPastAppointments)
		routerGroup.Post("/recurring", handler.CreateRecurringAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}", handler.UpdateAppointment)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
		routerGroup.Patch("/{id}/status", handler.UpdateAppointmentStatus)
		routerGroup.Post("/{id}/check-in", handler.CheckInAppointment)
		routerGroup.Post("/{id}/check-out", handler.CheckOutAppointment)
		routerGroup.Post("/{id}/payment", handler.RecordAppointmentPayment)
		routerGroup.Post("/{id}/cancel-series", handler.CancelAppointmentSeries)
	})
}

// CreateAppointment handles the creation of a new appointment.
// @Summary Create a new appointment
// @Description Book a service with an employee for a customer at the requested time window.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAppointments retrieves all appointments based on query parameters.
// @Summary Get all appointments
// @Description Retrieve appointments with optional filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param service_id query string false "Filter by service ID"
// @Param employee_id query string false "Filter by employee ID"
// @Param customer_id query string false "Filter by customer ID"
// @Param status query string false "Filter by status"
// @Param from query string false "Filter by start time from (RFC3339)"
// @Param to query string false "Filter by start time to (RFC3339)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldServiceID, model.FieldEmployeeID, model.FieldCustomerID, model.FieldStatus} {
		value := r.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	if from := r.URL.Query().Get("from"); from != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "start_from",
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to := r.URL.Query().Get("to"); to != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "start_to",
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetUpcomingAppointments retrieves appointments that start after the current time.
// @Summary Get upcoming appointments
// @Description Retrieve appointments starting after now, earliest first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of upcoming appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/upcoming [get]
// @Security BearerAuth
func (handler *Handler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	appointments, err := handler.service.GetUpcoming(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get upcoming appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Upcoming appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetPastAppointments retrieves appointments that ended before the current time.
// @Summary Get past appointments
// @Description Retrieve appointments ending before now, most recent first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of past appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/past [get]
// @Security BearerAuth
func (handler *Handler) GetPastAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPastAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	appointments, err := handler.service.GetPast(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get past appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Past appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointment reschedules or amends an appointment.
// @Summary Update an appointment
// @Description Change the service, employee, time window or notes of an appointment that has not started yet.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointment")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteAppointment removes an appointment that has not started yet.
// @Summary Delete an appointment
// @Description Delete an appointment that is still scheduled or confirmed.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Appointment deleted successfully")
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
// @Summary Update appointment status
// @Description Transition an appointment to a new status. Cancellation requires a reason.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAppointmentStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointmentStatus")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actingUserID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.UpdateStatus(ctx, req, id, actingUserID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update appointment status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment status updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckInAppointment marks the customer as arrived and starts the appointment.
// @Summary Check in an appointment
// @Description Record the arrival time and move the appointment to IN_PROGRESS.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment checked in successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckInAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckInAppointment")
	defer scope.End()

	id := chi.URLParam(request, "id")

	res, err := handler.service.CheckIn(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to check in appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment checked in successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckOutAppointment completes an in-progress appointment.
// @Summary Check out an appointment
// @Description Record the departure time, compute the actual duration and complete the appointment.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CheckOutRequest false "Check Out Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment checked out successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOutAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOutAppointment")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.CheckOutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckOut(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to check out appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment checked out successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// RecordAppointmentPayment records the payment for an appointment.
// @Summary Record an appointment payment
// @Description Record the payment details for an appointment. A payment can only be recorded once.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RecordPaymentRequest true "Record Payment Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Payment recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/payment [post]
// @Security BearerAuth
func (handler *Handler) RecordAppointmentPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordAppointmentPayment")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.RecordPaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.RecordPayment(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to record appointment payment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment payment recorded successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateRecurringAppointments books a series of repeating appointments.
// @Summary Create recurring appointments
// @Description Expand a recurrence rule into individual appointments. The series stops early at the first conflict.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateRecurringRequest true "Create Recurring Request"
// @Success 201 {object} response.Data[dto.RecurringSeriesResponse] "Recurring appointments created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/recurring [post]
// @Security BearerAuth
func (handler *Handler) CreateRecurringAppointments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRecurringAppointments")
	defer scope.End()

	req := dto.CreateRecurringRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateRecurring(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create recurring appointments")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Recurring appointments created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// CancelAppointmentSeries cancels the future members of a recurring series.
// @Summary Cancel a recurring series
// @Description Cancel all future cancellable appointments belonging to the same series as the given appointment.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Anchor Appointment ID"
// @Param request body dto.CancelSeriesRequest true "Cancel Series Request"
// @Success 200 {object} response.Data[dto.CancelSeriesResponse] "Series cancelled"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/cancel-series [post]
// @Security BearerAuth
func (handler *Handler) CancelAppointmentSeries(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointmentSeries")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.CancelSeriesRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actingUserID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || actingUserID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CancelSeries(ctx, req, id, actingUserID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel appointment series")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment series cancelled successfully")

	response.WithJSON(writer, http.StatusOK, res)
}
