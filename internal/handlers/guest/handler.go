package guest

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/guest/model"
	"hotelier/internal/domains/guest/model/dto"
	"hotelier/internal/domains/guest/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(r chi.Router) {
		r.Post("/", handler.CreateGuest)
		r.Get("/", handler.GetGuests)
		r.Get("/{id}", handler.GetGuestByID)
		r.Patch("/{id}", handler.UpdateGuest)
		r.Delete("/{id}", handler.DeleteGuest)
	})
}

// CreateGuest registers a guest.
// @Summary Create a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Create Guest Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	req := dto.CreateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "create guest")

		return
	}

	scope.AddEvent("Guest created by " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetGuests lists guests.
// @Summary Get all guests
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param full_name query string false "Filter by name"
// @Param phone query string false "Filter by phone"
// @Param is_vip query boolean false "Filter by VIP flag"
// @Success 200 {object} response.Data[dto.GetGuestsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := query.Get(model.FieldFullName); name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldFullName, Operator: gDto.FilterOperatorLike, Value: name, Table: model.TableName,
		})
	}

	if phone := query.Get(model.FieldPhone); phone != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldPhone, Operator: gDto.FilterOperatorLike, Value: phone, Table: model.TableName,
		})
	}

	if vip := shared.ConvertStringToBool(query.Get(model.FieldIsVIP)); vip != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldIsVIP, Operator: gDto.FilterOperatorEq, Value: *vip, Table: model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		response.Fail(w, scope, err, "get guests")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetGuestByID returns one guest.
// @Summary Get a guest by ID
// @Tags Guest
// @Produce json
// @Param id path integer true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "get guest by ID", "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateGuest edits a guest.
// @Summary Update a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path integer true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Update Guest Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "update guest", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Guest updated successfully")
}

// DeleteGuest removes a guest without bookings.
// @Summary Delete a guest
// @Tags Guest
// @Produce json
// @Param id path integer true "Guest ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, scope, err, "delete guest", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Guest deleted successfully")
}
