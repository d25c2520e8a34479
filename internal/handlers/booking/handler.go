package booking

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	checkoutDto "hotelier/internal/domains/checkout/model/dto"
	checkoutService "hotelier/internal/domains/checkout/service"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	occService "hotelier/internal/domains/occupancy/service"
	paymentDto "hotelier/internal/domains/payment/model/dto"
	paymentService "hotelier/internal/domains/payment/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	assignment occService.Assignment
	checkout   checkoutService.Checkout
	payments   paymentService.Payment
	otel       otel.Otel
}

func New(
	service service.Booking,
	assignment occService.Assignment,
	checkout checkoutService.Checkout,
	payments paymentService.Payment,
	otel otel.Otel,
) Handler {
	return Handler{
		service:    service,
		assignment: assignment,
		checkout:   checkout,
		payments:   payments,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/assignments", handler.AssignResource)
		routerGroup.Post("/{id}/deposits", handler.RecordDeposit)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Get("/{id}/invoice", handler.Invoice)
		routerGroup.Get("/{id}/payments", handler.GetPayments)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a booking for a guest. When resource_id is given the stay is assigned in the same transaction.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(writer, scope, err, "create booking")

		return
	}

	log.Info().Int64("id", res.ID).Int64("guest_id", req.GuestID).Bool("assigned", res.Occupancy != nil).Msg("booking created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_status query string false "Filter by status" Enums(pending, confirmed, cancelled, completed)
// @Param booking_type query string false "Filter by type" Enums(room, hall)
// @Param guest_id query integer false "Filter by guest"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(req, true)

	guestID, err := request.QueryInt64(req, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	filter := dto.BookingFilter{
		Status:  req.URL.Query().Get("booking_status"),
		Type:    req.URL.Query().Get("booking_type"),
		GuestID: guestID,
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		response.Fail(writer, scope, err, "get bookings")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID returns a booking with its guest and occupancy.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(writer, scope, err, "get booking by ID", "id", id)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking edits an open booking.
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	body := dto.UpdateBookingRequest{}

	if err := validator.Validate(req.Body, &body); err != nil {
		response.Fail(writer, scope, err, "validate request body")

		return
	}

	if err := handler.service.Update(ctx, body, id); err != nil {
		response.Fail(writer, scope, err, "update booking", "id", id)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

// CancelBooking cancels a booking and releases its resources.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Cancel(ctx, id); err != nil {
		response.Fail(writer, scope, err, "cancel booking", "id", id)

		return
	}

	log.Info().Int64("id", id).Msg("booking cancelled")

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

// AssignResource places the booking's stay on a room or hall.
// @Summary Assign a room or hall
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param request body occDto.AssignRequest true "Assign Request"
// @Success 201 {object} response.Data[occDto.OccupancyResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/assignments [post]
// @Security BearerAuth
func (handler *Handler) AssignResource(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignResource")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	body := occDto.AssignRequest{}

	if err := validator.Validate(req.Body, &body); err != nil {
		response.Fail(writer, scope, err, "validate request body")

		return
	}

	rec, err := handler.assignment.Assign(ctx, id, body)
	if err != nil {
		response.Fail(writer, scope, err, "assign resource", "booking_id", id, "resource_id", body.ResourceID)

		return
	}

	res := occDto.OccupancyResponse{}
	res.FromRecord(rec)

	response.WithJSON(writer, http.StatusCreated, res)
}

// RecordDeposit records a security deposit.
// @Summary Record a deposit
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param request body dto.DepositRequest true "Deposit Request"
// @Success 201 {object} response.Data[dto.DepositResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/deposits [post]
// @Security BearerAuth
func (handler *Handler) RecordDeposit(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordDeposit")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	body := dto.DepositRequest{}

	if err := validator.Validate(req.Body, &body); err != nil {
		response.Fail(writer, scope, err, "validate request body")

		return
	}

	res, err := handler.service.RecordDeposit(ctx, id, body)
	if err != nil {
		response.Fail(writer, scope, err, "record deposit", "id", id)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// Checkout settles the booking and archives it.
// @Summary Check out a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param request body checkoutDto.CheckoutRequest true "Checkout Request"
// @Success 200 {object} response.Data[checkoutDto.SettlementResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	body := checkoutDto.CheckoutRequest{}

	if err := validator.Validate(req.Body, &body); err != nil {
		response.Fail(writer, scope, err, "validate request body")

		return
	}

	settlement, err := handler.checkout.Checkout(ctx, id, body)
	if err != nil {
		response.Fail(writer, scope, err, "check out booking", "id", id)

		return
	}

	log.Info().Int64("id", id).Msg("booking checked out")

	res := checkoutDto.SettlementResponse{}
	res.FromModel(settlement)

	response.WithJSON(writer, http.StatusOK, res)
}

// Invoice renders the printable invoice.
// @Summary Get the invoice of a booking
// @Tags Booking
// @Produce html
// @Param id path integer true "Booking ID"
// @Success 200 {string} string "HTML invoice"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/invoice [get]
// @Security BearerAuth
func (handler *Handler) Invoice(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Invoice")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	html, err := handler.checkout.Invoice(ctx, id)
	if err != nil {
		response.Fail(writer, scope, err, "render invoice", "id", id)

		return
	}

	response.WithHTML(writer, http.StatusOK, html)
}

// GetPayments lists the payments of a booking.
// @Summary Get the payments of a booking
// @Tags Booking
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} response.Data[paymentDto.GetPaymentsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(writer http.ResponseWriter, req *http.Request) {
	ctx, scope := handler.otel.NewScope(req.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	id, err := request.ID(req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	var res paymentDto.GetPaymentsResponse

	res, err = handler.payments.ListByBooking(ctx, id)
	if err != nil {
		response.Fail(writer, scope, err, "get payments", "id", id)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
