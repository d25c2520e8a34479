package pricing

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/pricing/model"
	"hotelier/internal/domains/pricing/model/dto"
	"hotelier/internal/domains/pricing/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.PriceEntry
	otel    otel.Otel
}

func New(service service.PriceEntry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/price-entries", func(r chi.Router) {
		r.Post("/", handler.CreatePriceEntry)
		r.Get("/", handler.GetPriceEntries)
		r.Get("/applicable", handler.GetApplicable)
		r.Get("/{id}", handler.GetPriceEntryByID)
		r.Patch("/{id}", handler.UpdatePriceEntry)
		r.Delete("/{id}", handler.DeletePriceEntry)
	})
}

// CreatePriceEntry adds a dated price for a room type.
// @Summary Create a price entry
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.CreatePriceEntryRequest true "Create Price Entry Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries [post]
// @Security BearerAuth
func (handler *Handler) CreatePriceEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePriceEntry")
	defer scope.End()

	req := dto.CreatePriceEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "create price entry")

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetPriceEntries lists price entries.
// @Summary Get all price entries
// @Tags Pricing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_type_id query integer false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetPriceEntriesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries [get]
// @Security BearerAuth
func (handler *Handler) GetPriceEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPriceEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomTypeID, err := request.QueryInt64(r, model.FieldRoomTypeID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if roomTypeID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldRoomTypeID, Operator: gDto.FilterOperatorEq, Value: roomTypeID, Table: model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		response.Fail(w, scope, err, "get price entries")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetApplicable lists every entry of a room type covering a date.
// @Summary Get the price entries applicable on a date
// @Tags Pricing
// @Produce json
// @Param room_type_id query integer true "Room type"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[[]dto.PriceEntryResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries/applicable [get]
// @Security BearerAuth
func (handler *Handler) GetApplicable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApplicable")
	defer scope.End()

	roomTypeID, err := request.QueryInt64(r, model.FieldRoomTypeID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if roomTypeID <= 0 {
		response.WithError(w, failure.BadRequestFromString("room_type_id is required"))

		return
	}

	date, err := request.QueryDay(r, "date")
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListApplicable(ctx, roomTypeID, date)
	if err != nil {
		response.Fail(w, scope, err, "get applicable price entries", "room_type_id", roomTypeID)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPriceEntryByID returns one price entry.
// @Summary Get a price entry by ID
// @Tags Pricing
// @Produce json
// @Param id path integer true "Price entry ID"
// @Success 200 {object} response.Data[dto.PriceEntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPriceEntryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPriceEntryByID")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "get price entry by ID", "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdatePriceEntry edits a price entry.
// @Summary Update a price entry
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path integer true "Price entry ID"
// @Param request body dto.UpdatePriceEntryRequest true "Update Price Entry Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePriceEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePriceEntry")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdatePriceEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "update price entry", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Price entry updated successfully")
}

// DeletePriceEntry removes a price entry.
// @Summary Delete a price entry
// @Tags Pricing
// @Produce json
// @Param id path integer true "Price entry ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/price-entries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePriceEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePriceEntry")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, scope, err, "delete price entry", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Price entry deleted successfully")
}
