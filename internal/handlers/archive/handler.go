package archive

import (
	"fmt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/archive/model/dto"
	"hotelier/internal/domains/archive/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Archive
	otel    otel.Otel
}

func New(service service.Archive, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/archives", func(r chi.Router) {
		r.Get("/", handler.GetArchives)
		r.Get("/export", handler.ExportArchives)
	})
}

func archiveFilter(r *http.Request) (dto.ArchiveFilter, error) {
	from, err := request.OptionalDay(r, "from")
	if err != nil {
		return dto.ArchiveFilter{}, err
	}

	to, err := request.OptionalDay(r, "to")
	if err != nil {
		return dto.ArchiveFilter{}, err
	}

	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-1)
		to = &end
	}

	return dto.ArchiveFilter{From: from, To: to, GuestName: r.URL.Query().Get("guest_name")}, nil
}

// GetArchives lists completed bookings.
// @Summary Get archived bookings
// @Tags Archive
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param from query string false "Completed on or after (YYYY-MM-DD)"
// @Param to query string false "Completed on or before (YYYY-MM-DD)"
// @Param guest_name query string false "Filter by guest name"
// @Success 200 {object} response.Data[dto.GetArchivesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/archives [get]
// @Security BearerAuth
func (handler *Handler) GetArchives(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArchives")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := archiveFilter(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		response.Fail(w, scope, err, "get archives")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ExportArchives downloads the archive as a spreadsheet.
// @Summary Export archived bookings
// @Tags Archive
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Completed on or after (YYYY-MM-DD)"
// @Param to query string false "Completed on or before (YYYY-MM-DD)"
// @Param guest_name query string false "Filter by guest name"
// @Success 200 {file} file
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/archives/export [get]
// @Security BearerAuth
func (handler *Handler) ExportArchives(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportArchives")
	defer scope.End()

	filter, err := archiveFilter(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	file, err := handler.service.Export(ctx, filter.ToFilterGroup())
	if err != nil {
		response.Fail(w, scope, err, "export archives")

		return
	}

	name := fmt.Sprintf("archive-%s.xlsx", timezone.Format(timezone.Now(), constant.DayFormat))

	response.WithAttachment(w, constant.ContentTypeXLSX, name, file)
}
