package occupancy

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model/dto"
	"hotelier/internal/domains/occupancy/service"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	windowDay  = "day"
	windowHour = "hour"
)

type Handler struct {
	assignment   service.Assignment
	availability service.Availability
	otel         otel.Otel
}

func New(assignment service.Assignment, availability service.Availability, otel otel.Otel) Handler {
	return Handler{
		assignment:   assignment,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/occupancy/{kind}/{id}/check-in", handler.CheckIn)

	router.Route("/availability", func(r chi.Router) {
		r.Get("/", handler.ListAvailable)
		r.Get("/{kind}/{id}", handler.Lookup)
	})
}

func pathKind(r *http.Request) (resModel.Kind, error) {
	kind, err := resModel.ParseKind(chi.URLParam(r, constant.RequestParamKind))
	if err != nil {
		return "", failure.BadRequest(err)
	}

	return kind, nil
}

// CheckIn moves a booked occupancy to checked in.
// @Summary Check in an occupancy
// @Tags Occupancy
// @Produce json
// @Param kind path string true "Resource kind" Enums(room, hall)
// @Param id path integer true "Occupancy ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/{kind}/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	kind, err := pathKind(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.assignment.CheckIn(ctx, kind, id); err != nil {
		response.Fail(w, scope, err, "check in", "kind", string(kind), "id", id)

		return
	}

	response.WithMessage(w, http.StatusOK, "Checked in successfully")
}

// ListAvailable lists the resources free for the whole window.
// @Summary List available rooms or halls
// @Tags Occupancy
// @Produce json
// @Param kind query string true "Resource kind" Enums(room, hall)
// @Param start query string true "Window start (RFC3339 or YYYY-MM-DDTHH:MM)"
// @Param end query string true "Window end (RFC3339 or YYYY-MM-DDTHH:MM)"
// @Success 200 {object} response.Data[dto.AvailableResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListAvailable")
	defer scope.End()

	query := r.URL.Query()

	kind, err := resModel.ParseKind(query.Get(constant.RequestParamKind))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if query.Get("start") == "" || query.Get("end") == "" {
		response.WithError(w, failure.BadRequestFromString("start and end are required"))

		return
	}

	start, err := request.QueryStamp(r, "start")
	if err != nil {
		response.WithError(w, err)

		return
	}

	end, err := request.QueryStamp(r, "end")
	if err != nil {
		response.WithError(w, err)

		return
	}

	window := engine.Interval{Start: start, End: end}
	if !window.Valid() {
		response.WithError(w, failure.BadRequestFromString("start must be before end"))

		return
	}

	resources, err := handler.availability.ListAvailable(ctx, kind, window)
	if err != nil {
		response.Fail(w, scope, err, "list available resources", "kind", string(kind))

		return
	}

	res := dto.AvailableResponse{}
	res.FromModels(kind, window, resources)

	response.WithJSON(w, http.StatusOK, res)
}

// Lookup reports which booking holds a resource around an instant.
// @Summary Look up the booking holding a room or hall
// @Tags Occupancy
// @Produce json
// @Param kind path string true "Resource kind" Enums(room, hall)
// @Param id path integer true "Resource ID"
// @Param at query string false "Instant, defaults to now"
// @Param window query string false "Window around the instant" Enums(day, hour)
// @Success 200 {object} response.Data[dto.LookupResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{kind}/{id} [get]
// @Security BearerAuth
func (handler *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Lookup")
	defer scope.End()

	kind, err := pathKind(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := request.ID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	at, err := request.QueryStamp(r, "at")
	if err != nil {
		response.WithError(w, err)

		return
	}

	var window engine.Interval

	switch r.URL.Query().Get("window") {
	case "", windowDay:
		window = engine.DayWindow(at, timezone.GetLocation())
	case windowHour:
		window = engine.HourWindow(at, timezone.GetLocation())
	default:
		response.WithError(w, failure.InvalidParam("window", "day or hour"))

		return
	}

	rec, found, err := handler.availability.FindBookingForResource(ctx, kind, id, window)
	if err != nil {
		response.Fail(w, scope, err, "look up occupancy", "kind", string(kind), "id", id)

		return
	}

	status, err := handler.availability.StatusAt(ctx, kind, id, at)
	if err != nil {
		response.Fail(w, scope, err, "get status", "kind", string(kind), "id", id)

		return
	}

	res := dto.LookupResponse{Kind: kind, ResourceID: id, Status: status}
	res.Window.FromInterval(window)

	if found {
		occupancy := dto.OccupancyResponse{}
		occupancy.FromRecord(rec)
		res.Occupancy = &occupancy
	}

	response.WithJSON(w, http.StatusOK, res)
}
