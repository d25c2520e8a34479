package resource

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/resource/model"
	"hotelier/internal/domains/resource/model/dto"
	"hotelier/internal/domains/resource/service"
	"hotelier/shared"
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
	service service.Resource
	otel    otel.Otel
}

func New(service service.Resource, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the same inventory endpoints for rooms and halls.
func (handler *Handler) Router(router chi.Router) {
	for _, kind := range []model.Kind{model.KindRoom, model.KindHall} {
		router.Route("/"+model.TableFor(kind).Name, func(r chi.Router) {
			r.Post("/", handler.CreateResource(kind))
			r.Get("/", handler.GetResources(kind))
			r.Get("/{id}", handler.GetResourceByID(kind))
			r.Patch("/{id}", handler.UpdateResource(kind))
			r.Delete("/{id}", handler.DeleteResource(kind))
			r.Patch("/{id}/housekeeping", handler.SetHousekeeping(kind))
			r.Patch("/{id}/housekeeper", handler.AssignHousekeeper(kind))
			r.Post("/{id}/image", handler.UploadImage(kind))
		})
	}
}

// CreateResource adds a room or hall.
// @Summary Create a room or hall
// @Tags Resource
// @Accept json
// @Produce json
// @Param request body dto.CreateResourceRequest true "Create Resource Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Router /v1/halls [post]
// @Security BearerAuth
func (handler *Handler) CreateResource(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateResource")
		defer scope.End()

		req := dto.CreateResourceRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, scope, err, "validate request body")

			return
		}

		id, err := handler.service.Create(ctx, kind, req)
		if err != nil {
			response.Fail(w, scope, err, "create resource", "kind", string(kind))

			return
		}

		scope.AddEvent("Resource created by " + shared.Actor(ctx))

		response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
	}
}

// GetResources lists rooms or halls.
// @Summary Get all rooms or halls
// @Tags Resource
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param floor_id query integer false "Filter by floor"
// @Param housekeeping_status query string false "Filter by housekeeping status"
// @Param is_active query boolean false "Filter rooms by active flag"
// @Success 200 {object} response.Data[dto.GetResourcesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Router /v1/halls [get]
// @Security BearerAuth
func (handler *Handler) GetResources(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResources")
		defer scope.End()

		queryParams := gDto.QueryParams{}
		queryParams.FromRequest(r, true)

		filter, err := resourceFilter(r, kind)
		if err != nil {
			response.WithError(w, err)

			return
		}

		res, err := handler.service.GetAll(ctx, kind, queryParams, filter)
		if err != nil {
			response.Fail(w, scope, err, "get resources", "kind", string(kind))

			return
		}

		response.WithJSON(w, http.StatusOK, res)
	}
}

func resourceFilter(r *http.Request, kind model.Kind) (gDto.FilterGroup, error) {
	table := model.TableFor(kind)
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	query := r.URL.Query()

	floorID, err := request.QueryInt64(r, model.FieldFloorID)
	if err != nil {
		return filter, err
	}

	if floorID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldFloorID, Operator: gDto.FilterOperatorEq, Value: floorID, Table: table.Name,
		})
	}

	if status := query.Get(model.FieldHousekeepingStatus); status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldHousekeepingStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: table.Name,
		})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		if !table.HasIsActive {
			return filter, failure.BadRequestFromString("halls have no is_active flag")
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: table.Name,
		})
	}

	return filter, nil
}

// GetResourceByID returns one room or hall.
// @Summary Get a room or hall by ID
// @Tags Resource
// @Produce json
// @Param id path integer true "Resource ID"
// @Success 200 {object} response.Data[dto.ResourceResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Router /v1/halls/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetResourceByID(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResourceByID")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		res, err := handler.service.Get(ctx, kind, id)
		if err != nil {
			response.Fail(w, scope, err, "get resource by ID", "id", id)

			return
		}

		response.WithJSON(w, http.StatusOK, res)
	}
}

// UpdateResource edits a room or hall.
// @Summary Update a room or hall
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path integer true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Update Resource Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Router /v1/halls/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateResource(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateResource")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req := dto.UpdateResourceRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, scope, err, "validate request body")

			return
		}

		if err := handler.service.Update(ctx, kind, id, req); err != nil {
			response.Fail(w, scope, err, "update resource", "id", id)

			return
		}

		response.WithMessage(w, http.StatusOK, "Resource updated successfully")
	}
}

// DeleteResource removes a room or hall that no booking references.
// @Summary Delete a room or hall
// @Tags Resource
// @Produce json
// @Param id path integer true "Resource ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Router /v1/halls/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteResource(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteResource")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		if err := handler.service.Delete(ctx, kind, id); err != nil {
			response.Fail(w, scope, err, "delete resource", "id", id)

			return
		}

		scope.AddEvent("Resource deleted by " + shared.Actor(ctx))

		response.WithMessage(w, http.StatusOK, "Resource deleted successfully")
	}
}

// SetHousekeeping records the cleaning state.
// @Summary Set housekeeping status
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path integer true "Resource ID"
// @Param request body dto.HousekeepingRequest true "Housekeeping Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/housekeeping [patch]
// @Router /v1/halls/{id}/housekeeping [patch]
// @Security BearerAuth
func (handler *Handler) SetHousekeeping(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetHousekeeping")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req := dto.HousekeepingRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, scope, err, "validate request body")

			return
		}

		if err := handler.service.SetHousekeeping(ctx, kind, id, req); err != nil {
			response.Fail(w, scope, err, "set housekeeping status", "id", id)

			return
		}

		response.WithMessage(w, http.StatusOK, "Housekeeping status updated successfully")
	}
}

// AssignHousekeeper sets or clears the responsible housekeeper.
// @Summary Assign a housekeeper
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path integer true "Resource ID"
// @Param request body dto.AssignHousekeeperRequest true "Assign Housekeeper Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/housekeeper [patch]
// @Router /v1/halls/{id}/housekeeper [patch]
// @Security BearerAuth
func (handler *Handler) AssignHousekeeper(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignHousekeeper")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		req := dto.AssignHousekeeperRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, scope, err, "validate request body")

			return
		}

		if err := handler.service.AssignHousekeeper(ctx, kind, id, req); err != nil {
			response.Fail(w, scope, err, "assign housekeeper", "id", id)

			return
		}

		response.WithMessage(w, http.StatusOK, "Housekeeper assigned successfully")
	}
}

// UploadImage replaces the resource picture.
// @Summary Upload a room or hall image
// @Tags Resource
// @Accept multipart/form-data
// @Produce json
// @Param id path integer true "Resource ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Data[gDto.URLResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/image [post]
// @Router /v1/halls/{id}/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadResourceImage")
		defer scope.End()

		id, err := request.ID(r)
		if err != nil {
			response.WithError(w, err)

			return
		}

		if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
			response.Fail(w, scope, failure.BadRequest(err), "parse multipart form")

			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("image is required"))

			return
		}
		defer file.Close()

		if err := validator.ValidateImage(header); err != nil {
			response.WithError(w, err)

			return
		}

		url, err := handler.service.UploadImage(ctx, kind, id, file, header)
		if err != nil {
			response.Fail(w, scope, err, "upload resource image", "id", id)

			return
		}

		response.WithJSON(w, http.StatusOK, gDto.URLResponse{URL: url})
	}
}
