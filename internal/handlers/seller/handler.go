package seller

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/seller/model/dto"
	"hotelier/internal/domains/seller/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.SellerApplication
	otel    otel.Otel
}

func New(service service.SellerApplication, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/seller-applications", func(r chi.Router) {
		r.Post("/", handler.SubmitApplication)
		r.Get("/", handler.GetApplications)
		r.Get("/{id}", handler.GetApplicationByID)
		r.Patch("/{id}", handler.ReviewApplication)
	})
}

// SubmitApplication is the public seller intake form.
// @Summary Submit a seller application
// @Tags Seller
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Seller Application"
// @Success 201 {object} response.Data[dto.SubmitApplicationResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seller-applications [post]
func (handler *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitApplication")
	defer scope.End()

	req := dto.SubmitApplicationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "submit seller application")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetApplications lists seller applications.
// @Summary Get all seller applications
// @Tags Seller
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Success 200 {object} response.Data[dto.GetApplicationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/seller-applications [get]
// @Security BearerAuth
func (handler *Handler) GetApplications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApplications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, dto.StatusFilter(r.URL.Query().Get("status")))
	if err != nil {
		response.Fail(w, scope, err, "get seller applications")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetApplicationByID returns one seller application.
// @Summary Get a seller application by ID
// @Tags Seller
// @Produce json
// @Param id path integer true "Application ID"
// @Success 200 {object} response.Data[dto.ApplicationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seller-applications/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetApplicationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApplicationByID")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err, "get seller application", "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ReviewApplication approves or rejects a pending application.
// @Summary Review a seller application
// @Tags Seller
// @Accept json
// @Produce json
// @Param id path integer true "Application ID"
// @Param request body dto.ReviewApplicationRequest true "Review"
// @Success 200 {object} response.Data[dto.ApplicationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seller-applications/{id} [patch]
// @Security BearerAuth
func (handler *Handler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewApplication")
	defer scope.End()

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.ReviewApplicationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	res, err := handler.service.Review(ctx, id, req)
	if err != nil {
		response.Fail(w, scope, err, "review seller application", "id", id)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
