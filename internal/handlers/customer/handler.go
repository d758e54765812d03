package customer

import (
	"net/http"

	"bizdesk/infras/otel"
	"bizdesk/internal/domains/customer/model"
	"bizdesk/internal/domains/customer/model/dto"
	"bizdesk/internal/domains/customer/service"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	"bizdesk/shared/validator"
	"bizdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCustomer)
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/{id}", handler.GetCustomerByID)
		routerGroup.Patch("/{id}", handler.UpdateCustomer)
		routerGroup.Delete("/{id}", handler.DeleteCustomer)
	})
}

// CreateCustomer handles the creation of a new customer.
// @Summary Create a new customer
// @Description Create a new customer with the provided details.
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Create Customer Request"
// @Success 201 {object} response.Message "Customer created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers [post]
// @Security BearerAuth
func (handler *Handler) CreateCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomer")
	defer scope.End()

	req := dto.CreateCustomerRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create customer")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer created successfully")

	response.WithMessage(writer, http.StatusCreated, "Customer created successfully")
}

// GetCustomers retrieves all customers based on query parameters.
// @Summary Get all customers
// @Description Retrieve all customers with optional filtering and pagination.
// @Tags Customer
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param is_active query string false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetCustomersResponse] "List of customers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
// @Security BearerAuth
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
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

	if isActive != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    isActive,
			Table:    model.TableName,
		})
	}

	customers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customers retrieved successfully")

	response.WithJSON(w, http.StatusOK, customers)
}

// GetCustomerByID retrieves a customer by its ID.
// @Summary Get a customer by ID
// @Description Retrieve a customer by its unique identifier.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Data[dto.CustomerResponse] "Customer details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	cust, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get customer")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customer retrieved successfully")

	response.WithJSON(w, http.StatusOK, cust)
}

// UpdateCustomer updates the details of a customer.
// @Summary Update a customer
// @Description Update the details of an existing customer.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Update Customer Request"
// @Success 200 {object} response.Message "Customer updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCustomer")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateCustomerRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update customer")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer updated successfully")

	response.WithMessage(writer, http.StatusOK, "Customer updated successfully")
}

// DeleteCustomer removes a customer.
// @Summary Delete a customer
// @Description Delete a customer by its unique identifier.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Message "Customer deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCustomer")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete customer")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Customer deleted successfully")
}
