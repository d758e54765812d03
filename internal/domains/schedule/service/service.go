package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bizdesk/config"
	"bizdesk/infras/otel"
	catalogModel "bizdesk/internal/domains/catalog/model"
	catalogRepo "bizdesk/internal/domains/catalog/repository"
	customerModel "bizdesk/internal/domains/customer/model"
	customerRepo "bizdesk/internal/domains/customer/repository"
	employeeModel "bizdesk/internal/domains/employee/model"
	employeeRepo "bizdesk/internal/domains/employee/repository"
	"bizdesk/internal/domains/schedule/event"
	"bizdesk/internal/domains/schedule/model"
	"bizdesk/internal/domains/schedule/model/dto"
	"bizdesk/internal/domains/schedule/recurrence"
	"bizdesk/internal/domains/schedule/repository"
	"bizdesk/shared"
	"bizdesk/shared/cache"
	"bizdesk/shared/clock"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	"bizdesk/shared/failure"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

type Schedule interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetUpcoming(ctx context.Context, req gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	GetPast(ctx context.Context, req gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) (dto.AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id, actingUserID string) (dto.AppointmentResponse, error)
	CheckIn(ctx context.Context, id string) (dto.AppointmentResponse, error)
	CheckOut(ctx context.Context, req dto.CheckOutRequest, id string) (dto.AppointmentResponse, error)
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, id string) (dto.AppointmentResponse, error)
	CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest) (dto.RecurringSeriesResponse, error)
	CancelSeries(ctx context.Context, req dto.CancelSeriesRequest, anchorID, actingUserID string) (dto.CancelSeriesResponse, error)
}

type serviceImpl struct {
	repo         repository.Schedule
	catalogRepo  catalogRepo.Catalog
	employeeRepo employeeRepo.Employee
	customerRepo customerRepo.Customer
	events       event.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	clock        clock.Clock
}

func New(
	repo repository.Schedule,
	catalogRepository catalogRepo.Catalog,
	employeeRepository employeeRepo.Employee,
	customerRepository customerRepo.Customer,
	events event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clk clock.Clock,
) Schedule {
	return &serviceImpl{
		repo:         repo,
		catalogRepo:  catalogRepository,
		employeeRepo: employeeRepository,
		customerRepo: customerRepository,
		events:       events,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		clock:        clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.resolveReferences(ctx, req.ServiceID, req.EmployeeID, req.CustomerID); err != nil {
		return res, err
	}

	appointment, err := req.ToModel(user, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !appointment.EndTime.After(appointment.StartTime) {
		return res, failure.BadRequestFromString("start time must be before end time") // nolint:wrapcheck
	}

	if err = s.repo.InsertBooked(ctx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return res, err
	}

	s.events.Publish(ctx, event.TypeCreated, appointment)
	s.invalidateListCaches(ctx)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetUpcoming(ctx context.Context, req gDto.QueryParams) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetUpcoming")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == "" {
		req.SortBy = model.FieldStartTime
		req.SortDir = gDto.SortDirAsc
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStartTime, Operator: gDto.FilterOperatorGreater, Value: s.clock.Now(), Table: model.TableName, ArgName: "upcoming_after"},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) GetPast(ctx context.Context, req gDto.QueryParams) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetPast")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == "" {
		req.SortBy = model.FieldEndTime
		req.SortDir = gDto.SortDirDesc
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldEndTime, Operator: gDto.FilterOperatorLess, Value: s.clock.Now(), Table: model.TableName, ArgName: "past_before"},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	if !appointment.Status.Cancellable() {
		return res, failure.UnprocessableEntity(fmt.Sprintf("appointment in status %s can no longer be modified", appointment.Status)) // nolint:wrapcheck
	}

	now := s.clock.Now()
	fields := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if req.ServiceID != "" {
		if err = s.resolveService(ctx, req.ServiceID); err != nil {
			return res, err
		}

		appointment.ServiceID = req.ServiceID
		fields[model.FieldServiceID] = req.ServiceID
	}

	if req.EmployeeID != "" {
		if err = s.resolveEmployee(ctx, req.EmployeeID); err != nil {
			return res, err
		}

		appointment.EmployeeID = req.EmployeeID
		fields[model.FieldEmployeeID] = req.EmployeeID
	}

	if req.StartTime != "" {
		startTime, parseErr := timezone.Parse(constant.DateFormat, req.StartTime)
		if parseErr != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", parseErr)) // nolint:wrapcheck
		}

		appointment.StartTime = startTime
		fields[model.FieldStartTime] = startTime
	}

	if req.EndTime != "" {
		endTime, parseErr := timezone.Parse(constant.DateFormat, req.EndTime)
		if parseErr != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid end time: %v", parseErr)) // nolint:wrapcheck
		}

		appointment.EndTime = endTime
		fields[model.FieldEndTime] = endTime
	}

	if req.Notes != nil {
		appointment.Notes = req.Notes
		fields[model.FieldNotes] = *req.Notes
	}

	if !appointment.EndTime.After(appointment.StartTime) {
		return res, failure.BadRequestFromString("start time must be before end time") // nolint:wrapcheck
	}

	if err = s.repo.UpdateBooked(ctx, appointment, fields); err != nil {
		log.Error().Err(err).Msg("failed to update appointment")

		return res, err
	}

	appointment.ModifiedAt = now
	appointment.ModifiedBy = user

	s.events.Publish(ctx, event.TypeRescheduled, appointment)
	s.invalidateCaches(ctx, id)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !appointment.Status.Cancellable() {
		return failure.UnprocessableEntity(fmt.Sprintf("appointment in status %s cannot be deleted", appointment.Status)) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.events.Publish(ctx, event.TypeDeleted, appointment)
	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id, actingUserID string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	target := model.Status(req.Status)
	if !target.Valid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown appointment status: %s", req.Status)) // nolint:wrapcheck
	}

	if target == model.StatusCompleted {
		return res, failure.UnprocessableEntity("appointment completion requires check-out") // nolint:wrapcheck
	}

	if !appointment.Status.CanTransitionTo(target) {
		return res, failure.UnprocessableEntity(fmt.Sprintf("cannot transition appointment from %s to %s", appointment.Status, target)) // nolint:wrapcheck
	}

	now := s.clock.Now()
	fields := map[string]any{
		model.FieldStatus:        string(target),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actingUserID,
	}

	switch target {
	case model.StatusCancelled:
		if req.Reason == "" {
			return res, failure.BadRequestFromString("cancellation reason is required") // nolint:wrapcheck
		}

		if actingUserID == "" {
			return res, failure.BadRequestFromString("acting user is required for cancellation") // nolint:wrapcheck
		}

		fields[model.FieldCancellationReason] = req.Reason
		fields[model.FieldCancelledByID] = actingUserID
		fields[model.FieldCancelledAt] = now

		appointment.CancellationReason = &req.Reason
		appointment.CancelledByID = &actingUserID
		appointment.CancelledAt = &now
	case model.StatusInProgress:
		fields[model.FieldCheckInTime] = now
		appointment.CheckInTime = &now
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return res, fmt.Errorf("failed to update appointment status: %w", err)
	}

	appointment.Status = target
	appointment.ModifiedAt = now
	appointment.ModifiedBy = actingUserID

	s.events.Publish(ctx, event.TypeStatusChanged, appointment)
	s.invalidateCaches(ctx, id)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	if !appointment.Status.CanCheckIn() {
		return res, failure.UnprocessableEntity(fmt.Sprintf("cannot check in appointment in status %s", appointment.Status)) // nolint:wrapcheck
	}

	now := s.clock.Now()
	fields := map[string]any{
		model.FieldStatus:        string(model.StatusInProgress),
		model.FieldCheckInTime:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check in appointment")

		return res, fmt.Errorf("failed to check in appointment: %w", err)
	}

	appointment.Status = model.StatusInProgress
	appointment.CheckInTime = &now
	appointment.ModifiedAt = now
	appointment.ModifiedBy = user

	s.events.Publish(ctx, event.TypeCheckedIn, appointment)
	s.invalidateCaches(ctx, id)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, req dto.CheckOutRequest, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	if appointment.Status != model.StatusInProgress {
		return res, failure.UnprocessableEntity(fmt.Sprintf("cannot check out appointment in status %s", appointment.Status)) // nolint:wrapcheck
	}

	now := s.clock.Now()

	duration := 0
	if appointment.CheckInTime != nil {
		duration = int(now.Sub(*appointment.CheckInTime).Minutes())
	}

	fields := map[string]any{
		model.FieldStatus:                string(model.StatusCompleted),
		model.FieldCheckOutTime:          now,
		model.FieldActualDurationMinutes: duration,
		constant.FieldModifiedAt:         now,
		constant.FieldModifiedBy:         user,
	}

	if req.Feedback != nil {
		fields[model.FieldFeedback] = *req.Feedback
		appointment.Feedback = req.Feedback
	}

	if req.Rating != nil {
		fields[model.FieldRating] = *req.Rating
		appointment.Rating = req.Rating
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check out appointment")

		return res, fmt.Errorf("failed to check out appointment: %w", err)
	}

	appointment.Status = model.StatusCompleted
	appointment.CheckOutTime = &now
	appointment.ActualDurationMinutes = &duration
	appointment.ModifiedAt = now
	appointment.ModifiedBy = user

	s.events.Publish(ctx, event.TypeCheckedOut, appointment)
	s.invalidateCaches(ctx, id)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return res, err
	}

	if appointment.Paid {
		return res, failure.UnprocessableEntity("appointment payment has already been recorded") // nolint:wrapcheck
	}

	now := s.clock.Now()
	fields := map[string]any{
		model.FieldPaid:          true,
		model.FieldPaymentAmount: req.Amount,
		model.FieldPaymentMethod: req.Method,
		model.FieldPaymentDate:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if req.Reference != nil {
		fields[model.FieldPaymentReference] = *req.Reference
		appointment.PaymentReference = req.Reference
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record appointment payment")

		return res, fmt.Errorf("failed to record appointment payment: %w", err)
	}

	appointment.Paid = true
	appointment.PaymentAmount = &req.Amount
	appointment.PaymentMethod = &req.Method
	appointment.PaymentDate = &now
	appointment.ModifiedAt = now
	appointment.ModifiedBy = user

	s.events.Publish(ctx, event.TypePaymentRecd, appointment)
	s.invalidateCaches(ctx, id)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest) (res dto.RecurringSeriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.CreateRecurring")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.resolveReferences(ctx, req.ServiceID, req.EmployeeID, req.CustomerID); err != nil {
		return res, err
	}

	startTime, err := timezone.Parse(constant.DateFormat, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", err)) // nolint:wrapcheck
	}

	endTime, err := timezone.Parse(constant.DateFormat, req.EndTime)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid end time: %v", err)) // nolint:wrapcheck
	}

	if !endTime.After(startTime) {
		return res, failure.BadRequestFromString("start time must be before end time") // nolint:wrapcheck
	}

	frequency, err := recurrence.ParseFrequency(req.Frequency)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid recurrence frequency: %s", req.Frequency)) // nolint:wrapcheck
	}

	var recurrenceEnd *time.Time

	var expandUntil *time.Time

	if req.EndDate != nil {
		endDate, parseErr := timezone.Parse(constant.DateOnlyFormat, *req.EndDate)
		if parseErr != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid recurrence end date: %v", parseErr)) // nolint:wrapcheck
		}

		recurrenceEnd = &endDate

		// Occurrences starting any time on the end date itself still count.
		until := endDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
		expandUntil = &until
	}

	windows, err := recurrence.Expand(startTime, endTime, frequency, req.OccurrenceCount, expandUntil)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	now := s.clock.Now()
	pattern := string(frequency)
	created := []model.Appointment{}

	for _, window := range windows {
		appointment := model.Appointment{
			ID:                uuid.NewString(),
			ServiceID:         req.ServiceID,
			EmployeeID:        req.EmployeeID,
			CustomerID:        req.CustomerID,
			StartTime:         window.Start,
			EndTime:           window.End,
			Status:            model.StatusScheduled,
			Notes:             req.Notes,
			IsRecurring:       true,
			RecurrencePattern: &pattern,
			RecurrenceEndDate: recurrenceEnd,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		insertErr := s.repo.InsertBooked(ctx, appointment)
		if insertErr != nil {
			// A conflict on a later occurrence keeps the earlier ones:
			// the series comes back shorter and the caller compares counts.
			if failure.GetCode(insertErr) == http.StatusConflict {
				log.Warn().Str("appointment_id", appointment.ID).Time("start", window.Start).Msg("recurring series cut short by schedule conflict")

				break
			}

			err = insertErr

			return res, err
		}

		created = append(created, appointment)
	}

	if len(created) > 0 {
		s.events.Publish(ctx, event.TypeSeriesCreated, created[0])
		s.invalidateListCaches(ctx)
	}

	res.FromModels(created, len(windows))

	return res, nil
}

func (s *serviceImpl) CancelSeries(ctx context.Context, req dto.CancelSeriesRequest, anchorID, actingUserID string) (res dto.CancelSeriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.CancelSeries")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actingUserID == "" {
		return res, failure.BadRequestFromString("acting user is required for cancellation") // nolint:wrapcheck
	}

	anchor, err := s.getAppointment(ctx, anchorID)
	if err != nil {
		return res, err
	}

	if !anchor.IsRecurring || anchor.RecurrencePattern == nil {
		return res, failure.UnprocessableEntity("appointment is not part of a recurring series") // nolint:wrapcheck
	}

	anchorStart := timezone.ToAppTime(anchor.StartTime)
	anchorDate := time.Date(anchorStart.Year(), anchorStart.Month(), anchorStart.Day(), 0, 0, 0, 0, anchorStart.Location())

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldServiceID, Operator: gDto.FilterOperatorEq, Value: anchor.ServiceID, Table: model.TableName},
			gDto.Filter{Field: model.FieldEmployeeID, Operator: gDto.FilterOperatorEq, Value: anchor.EmployeeID, Table: model.TableName},
			gDto.Filter{Field: model.FieldCustomerID, Operator: gDto.FilterOperatorEq, Value: anchor.CustomerID, Table: model.TableName},
			gDto.Filter{Field: model.FieldRecurrencePattern, Operator: gDto.FilterOperatorEq, Value: *anchor.RecurrencePattern, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartTime, Operator: gDto.FilterOperatorGreaterEq, Value: anchorDate, Table: model.TableName, ArgName: "series_from"},
		},
	}

	members, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load recurring series members")

		return res, fmt.Errorf("failed to load recurring series members: %w", err)
	}

	now := s.clock.Now()
	cancelled := 0

	for _, member := range members {
		if !member.Status.Cancellable() || !member.StartTime.After(now) {
			continue
		}

		fields := map[string]any{
			model.FieldStatus:             string(model.StatusCancelled),
			model.FieldCancellationReason: req.Reason,
			model.FieldCancelledByID:      actingUserID,
			model.FieldCancelledAt:        now,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      actingUserID,
		}

		if err = s.repo.Update(ctx, fields, shared.FilterByID(member.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("appointment_id", member.ID).Msg("failed to cancel series member")

			return res, fmt.Errorf("failed to cancel series member: %w", err)
		}

		cancelled++
	}

	if cancelled > 0 {
		s.events.Publish(ctx, event.TypeSeriesCancelld, anchor)
		s.invalidateListCaches(ctx)
	}

	res.Cancelled = cancelled

	return res, nil
}

func (s *serviceImpl) getAppointment(ctx context.Context, id string) (model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appointment, nil
}

func (s *serviceImpl) resolveReferences(ctx context.Context, serviceID, employeeID, customerID string) error {
	if err := s.resolveService(ctx, serviceID); err != nil {
		return err
	}

	if err := s.resolveEmployee(ctx, employeeID); err != nil {
		return err
	}

	exists, err := s.customerRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exists {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) resolveService(ctx context.Context, serviceID string) error {
	exists, err := s.catalogRepo.Exist(ctx, shared.FilterByID(serviceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exists {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) resolveEmployee(ctx context.Context, employeeID string) error {
	exists, err := s.employeeRepo.Exist(ctx, shared.FilterByID(employeeID, employeeModel.FieldID, employeeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if employee exists")

		return fmt.Errorf("failed to check if employee exists: %w", err)
	}

	if !exists {
		return failure.NotFound("employee not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}
