package employee

import (
	"net/http"

	"bizdesk/infras/otel"
	"bizdesk/internal/domains/employee/model"
	"bizdesk/internal/domains/employee/model/dto"
	"bizdesk/internal/domains/employee/service"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	"bizdesk/shared/validator"
	"bizdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/employees", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEmployee)
		routerGroup.Get("/", handler.GetEmployees)
		routerGroup.Get("/{id}", handler.GetEmployeeByID)
		routerGroup.Patch("/{id}", handler.UpdateEmployee)
		routerGroup.Delete("/{id}", handler.DeleteEmployee)
	})
}

// CreateEmployee handles the creation of a new employee.
// @Summary Create a new employee
// @Description Create a new employee with the provided details.
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "Create Employee Request"
// @Success 201 {object} response.Message "Employee created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees [post]
// @Security BearerAuth
func (handler *Handler) CreateEmployee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEmployee")
	defer scope.End()

	req := dto.CreateEmployeeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create employee")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Employee created successfully")

	response.WithMessage(writer, http.StatusCreated, "Employee created successfully")
}

// GetEmployees retrieves all employees based on query parameters.
// @Summary Get all employees
// @Description Retrieve all employees with optional filtering and pagination.
// @Tags Employee
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param position query string false "Filter by position"
// @Param is_active query string false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetEmployeesResponse] "List of employees"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees [get]
// @Security BearerAuth
func (handler *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployees")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	position := r.URL.Query().Get(model.FieldPosition)
	isActive := r.URL.Query().Get(model.FieldIsActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if position != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPosition,
			Operator: gDto.FilterOperatorEq,
			Value:    position,
			Table:    model.TableName,
		})
	}

	if isActive != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    isActive,
			Table:    model.TableName,
		})
	}

	employees, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employees")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Employees retrieved successfully")

	response.WithJSON(w, http.StatusOK, employees)
}

// GetEmployeeByID retrieves a employee by its ID.
// @Summary Get a employee by ID
// @Description Retrieve a employee by its unique identifier.
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Data[dto.EmployeeResponse] "Employee details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployeeByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	emp, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get employee")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Employee retrieved successfully")

	response.WithJSON(w, http.StatusOK, emp)
}

// UpdateEmployee updates the details of a employee.
// @Summary Update a employee
// @Description Update the details of an existing employee.
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Update Employee Request"
// @Success 200 {object} response.Message "Employee updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEmployee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEmployee")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateEmployeeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update employee")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Employee updated successfully")

	response.WithMessage(writer, http.StatusOK, "Employee updated successfully")
}

// DeleteEmployee removes a employee.
// @Summary Delete a employee
// @Description Delete a employee by its unique identifier.
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Message "Employee deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEmployee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEmployee")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete employee")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Employee deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Employee deleted successfully")
}
