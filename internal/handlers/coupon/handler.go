package coupon

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/coupon/model"
	"hotelier/internal/domains/coupon/model/dto"
	"hotelier/internal/domains/coupon/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Coupon
	otel    otel.Otel
}

func New(service service.Coupon, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/coupons", func(r chi.Router) {
		r.Post("/", handler.CreateCoupon)
		r.Get("/", handler.GetCoupons)
		r.Get("/{id}", handler.GetCouponByID)
		r.Patch("/{id}", handler.UpdateCoupon)
		r.Delete("/{id}", handler.DeleteCoupon)
	})
}

// CreateCoupon adds a discount code.
// @Summary Create a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.CreateCouponRequest true "Create Price Entry Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons [post]
// @Security BearerAuth
func (handler *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCoupon")
	defer scope.End()

	req := dto.CreateCouponRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "create coupon")

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetCoupons lists coupons.
// @Summary Get all coupons
// @Tags Coupon
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by code"
// @Param type query string false "Filter by type" Enums(percentage, flat)
// @Success 200 {object} response.Data[dto.GetCouponsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons [get]
// @Security BearerAuth
func (handler *Handler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCoupons")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.CouponFilter{
		Code: r.URL.Query().Get(model.FieldCode),
		Type: r.URL.Query().Get(model.FieldType),
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		response.Fail(w, scope, err, "get coupons")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCouponByID returns one coupon.
// @Summary Get a coupon by ID
// @Tags Coupon
// @Produce json
// @Param id path integer true "Coupon ID"
// @Success 200 {object} response.Data[dto.CouponResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCouponByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCouponByID")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "get coupon by ID", "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateCoupon edits a coupon.
// @Summary Update a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path integer true "Coupon ID"
// @Param request body dto.UpdateCouponRequest true "Update Price Entry Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCoupon")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCouponRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(w, scope, err, "update coupon", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Coupon updated successfully")
}

// DeleteCoupon removes a coupon.
// @Summary Delete a coupon
// @Tags Coupon
// @Produce json
// @Param id path integer true "Coupon ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCoupon")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, scope, err, "delete coupon", "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Coupon deleted successfully")
}
