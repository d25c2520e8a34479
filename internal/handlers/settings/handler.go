package settings

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/settings/model"
	"hotelier/internal/domains/settings/model/dto"
	"hotelier/internal/domains/settings/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(r chi.Router) {
		r.Get("/", handler.GetSettings)
		r.Put("/", handler.UpdateSettings)
		r.Post("/logo", handler.UploadLogo)
	})
}

// GetSettings returns the hotel name, currency and logo.
// @Summary Get hotel settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[model.AppConfig]
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	var (
		res model.AppConfig
		err error
	)

	res, err = handler.service.Load(ctx)
	if err != nil {
		response.Fail(w, scope, err, "load settings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateSettings edits the hotel name or currency.
// @Summary Update hotel settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} response.Data[model.AppConfig]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings [put]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	req := dto.UpdateSettingsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "validate request body")

		return
	}

	res, err := handler.service.Update(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "update settings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadLogo replaces the hotel logo.
// @Summary Upload the hotel logo
// @Tags Settings
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo"
// @Success 200 {object} response.Data[gDto.URLResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/logo [post]
// @Security BearerAuth
func (handler *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadLogo")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		response.Fail(w, scope, failure.BadRequest(err), "parse multipart form")

		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("logo is required"))

		return
	}
	defer file.Close()

	if err := validator.ValidateImage(header); err != nil {
		response.WithError(w, err)

		return
	}

	url, err := handler.service.UploadLogo(ctx, file, header)
	if err != nil {
		response.Fail(w, scope, err, "upload logo")

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.URLResponse{URL: url})
}
