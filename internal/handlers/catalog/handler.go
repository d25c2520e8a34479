package catalog

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/catalog/model"
	"hotelier/internal/domains/catalog/model/dto"
	"hotelier/internal/domains/catalog/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	registry service.Registry
	otel     otel.Otel
}

func New(registry service.Registry, otel otel.Otel) Handler {
	return Handler{
		registry: registry,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	mount(router, handler.registry.Floors, handler.otel)
	mount(router, handler.registry.RoomTypes, handler.otel)
	mount(router, handler.registry.HallTypes, handler.otel)
	mount(router, handler.registry.Amenities, handler.otel)
	mount(router, handler.registry.Departments, handler.otel)
	mount(router, handler.registry.Designations, handler.otel)
	mount(router, handler.registry.Employees, handler.otel)
	mount(router, handler.registry.ExpenseCategories, handler.otel)
	mount(router, handler.registry.PaidServices, handler.otel)
	mount(router, handler.registry.MenuItems, handler.otel)
}

// entries serves one catalog kind.
type entries[T model.Entry[T]] struct {
	service service.Catalog[T]
	otel    otel.Otel
}

func mount[T model.Entry[T]](router chi.Router, svc service.Catalog[T], otl otel.Otel) {
	h := entries[T]{service: svc, otel: otl}

	router.Route("/"+svc.Kind().Path, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h entries[T]) scope(r *http.Request, op string) (*http.Request, otel.Scope) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	scope.SetAttribute("catalog", h.service.Kind().Table)

	return r.WithContext(ctx), scope
}

// Create adds a catalog entry.
// @Summary Create a catalog entry
// @Description Catalogs: floors, room-types, hall-types, amenities, departments, designations, employees, expense-categories, paid-services, menu-items.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param catalog path string true "Catalog" Enums(floors, room-types, hall-types, amenities, departments, designations, employees, expense-categories, paid-services, menu-items)
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/{catalog} [post]
// @Security BearerAuth
func (h entries[T]) Create(w http.ResponseWriter, r *http.Request) {
	r, scope := h.scope(r, "CreateCatalogEntry")
	defer scope.End()

	entry, err := request.Body[T](r)
	if err != nil {
		response.Fail(w, scope, err, "decode request body")

		return
	}

	id, err := h.service.Create(r.Context(), entry)
	if err != nil {
		response.Fail(w, scope, err, "create catalog entry", "catalog", h.service.Kind().Table)

		return
	}

	log.Info().Str("catalog", h.service.Kind().Table).Int64("id", id).Msg("catalog entry created")

	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// List pages through a catalog.
// @Summary List a catalog
// @Tags Catalog
// @Produce json
// @Param catalog path string true "Catalog"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Case-insensitive name search"
// @Success 200 {object} response.Data[dto.Page[any]]
// @Failure 500 {object} response.Error
// @Router /v1/{catalog} [get]
// @Security BearerAuth
func (h entries[T]) List(w http.ResponseWriter, r *http.Request) {
	r, scope := h.scope(r, "ListCatalog")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	filter := dto.Search(h.service.Kind(), r.URL.Query().Get(constant.RequestParamSearch))

	res, err := h.service.GetAll(r.Context(), params, filter)
	if err != nil {
		response.Fail(w, scope, err, "list catalog", "catalog", h.service.Kind().Table)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Get returns one catalog entry.
// @Summary Get a catalog entry
// @Tags Catalog
// @Produce json
// @Param catalog path string true "Catalog"
// @Param id path integer true "Entry ID"
// @Success 200 {object} response.Data[any]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/{catalog}/{id} [get]
// @Security BearerAuth
func (h entries[T]) Get(w http.ResponseWriter, r *http.Request) {
	r, scope := h.scope(r, "GetCatalogEntry")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Fail(w, scope, err, "get catalog entry", "catalog", h.service.Kind().Table, "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Update replaces a catalog entry.
// @Summary Replace a catalog entry
// @Tags Catalog
// @Accept json
// @Produce json
// @Param catalog path string true "Catalog"
// @Param id path integer true "Entry ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/{catalog}/{id} [put]
// @Security BearerAuth
func (h entries[T]) Update(w http.ResponseWriter, r *http.Request) {
	r, scope := h.scope(r, "UpdateCatalogEntry")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	entry, err := request.Body[T](r)
	if err != nil {
		response.Fail(w, scope, err, "decode request body")

		return
	}

	if err = h.service.Update(r.Context(), id, entry); err != nil {
		response.Fail(w, scope, err, "update catalog entry", "catalog", h.service.Kind().Table, "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Entry updated successfully")
}

// Delete removes a catalog entry that nothing references.
// @Summary Delete a catalog entry
// @Tags Catalog
// @Produce json
// @Param catalog path string true "Catalog"
// @Param id path integer true "Entry ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/{catalog}/{id} [delete]
// @Security BearerAuth
func (h entries[T]) Delete(w http.ResponseWriter, r *http.Request) {
	r, scope := h.scope(r, "DeleteCatalogEntry")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, scope, err, "delete catalog entry", "catalog", h.service.Kind().Table, "id", id)

		return
	}

	log.Info().Str("catalog", h.service.Kind().Table).Int64("id", id).Msg("catalog entry deleted")

	response.WithMessage(w, http.StatusOK, "Entry deleted successfully")
}
