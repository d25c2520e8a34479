package calendar

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/calendar/model"
	"hotelier/internal/domains/calendar/service"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/calendar", handler.GetCalendar)
}

// GetCalendar renders the occupancy grid.
// @Summary Get the occupancy calendar
// @Tags Calendar
// @Produce json
// @Param kind query string true "Resource kind" Enums(room, hall)
// @Param view query string false "Granularity, defaults to month" Enums(day, week, month)
// @Param date query string false "Anchor day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GridResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	query := r.URL.Query()

	kind, err := resModel.ParseKind(query.Get(constant.RequestParamKind))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	view, err := model.ParseGranularity(query.Get("view"))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	current, err := request.QueryDay(r, "date")
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, kind, view, current)
	if err != nil {
		response.Fail(w, scope, err, "build calendar", "kind", string(kind), "view", string(view))

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
