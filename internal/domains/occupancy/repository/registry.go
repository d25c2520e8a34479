package repository

import (
	"context"
	"fmt"
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	gRepo "hotelier/shared/repository"
	"hotelier/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// Occupancy reads and writes booked_rooms or booked_halls as Records.
type Occupancy interface {
	Kind() resModel.Kind
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, rec model.Record, username string) (int64, error)
	Get(ctx context.Context, id int64) (model.Record, bool, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (model.Record, bool, error)
	ListOverlapping(ctx context.Context, window engine.Interval, resourceIDs ...int64) ([]model.Record, error)
	ListOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, window engine.Interval, resourceIDs ...int64) ([]model.Record, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]model.Record, error)
	ListByBookings(ctx context.Context, bookingIDs ...int64) ([]model.Record, error)
	UpdateStatus(ctx context.Context, id int64, status engine.Status, username string) error
	UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id int64, status engine.Status, username string) error
	CancelByBookingTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, username string) error
	CheckOutByBookingTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, username string) error
}

type Registry struct {
	rooms Occupancy
	halls Occupancy
}

func NewRegistry(rooms BookedRoom, halls BookedHall) *Registry {
	return &Registry{
		rooms: &storeAdapter[model.BookedRoom]{store: rooms, kind: resModel.KindRoom, build: model.NewBookedRoom},
		halls: &storeAdapter[model.BookedHall]{store: halls, kind: resModel.KindHall, build: model.NewBookedHall},
	}
}

func (r *Registry) For(kind resModel.Kind) (Occupancy, error) {
	switch kind {
	case resModel.KindRoom:
		return r.rooms, nil
	case resModel.KindHall:
		return r.halls, nil
	}

	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

// All returns one Occupancy per kind, rooms first.
func (r *Registry) All() []Occupancy {
	return []Occupancy{r.rooms, r.halls}
}

type row interface {
	ToRecord() model.Record
}

type storeAdapter[T row] struct {
	store gRepo.Store[T]
	kind  resModel.Kind
	build func(model.Record, gModel.Metadata) T
}

func (a *storeAdapter[T]) Kind() resModel.Kind {
	return a.kind
}

func (a *storeAdapter[T]) table() model.Table {
	return model.TableFor(a.kind)
}

func (a *storeAdapter[T]) byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, a.table().Name)
}

func (a *storeAdapter[T]) byBooking(bookingID int64) gDto.FilterGroup {
	return shared.FilterByID(bookingID, model.FieldBookingID, a.table().Name)
}

// overlapping selects active rows with check_in <= window.End and check_out >= window.Start.
func (a *storeAdapter[T]) overlapping(window engine.Interval, resourceIDs []int64) gDto.FilterGroup {
	table := a.table().Name

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{ArgName: "window_end", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorLessEq, Value: window.End, Table: table},
			gDto.Filter{ArgName: "window_start", Field: model.FieldCheckOut, Operator: gDto.FilterOperatorGreaterEq, Value: window.Start, Table: table},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: engine.StatusCancelled, Table: table},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if len(resourceIDs) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    a.table().ResourceField,
			Operator: gDto.FilterOperatorIn,
			Value:    resourceIDs,
			Table:    table,
		})
	}

	return filter
}

func byCheckIn() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: gDto.SortDirAsc}
}

func toRecords[T row](rows []T) []model.Record {
	recs := make([]model.Record, len(rows))
	for i, r := range rows {
		recs[i] = r.ToRecord()
	}

	return recs
}

func (a *storeAdapter[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, rec model.Record, username string) (int64, error) {
	return a.store.InsertReturningIDTx(ctx, sqltx, a.build(rec, gModel.NewMetadata(username, timezone.Now()))) //nolint:wrapcheck
}

func (a *storeAdapter[T]) Get(ctx context.Context, id int64) (model.Record, bool, error) {
	res, err := a.store.Get(ctx, a.byID(id))
	if err != nil {
		return model.Record{}, false, err //nolint:wrapcheck
	}

	rec := res.ToRecord()

	return rec, rec.ID != 0, nil
}

func (a *storeAdapter[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (model.Record, bool, error) {
	res, err := a.store.GetTx(ctx, sqltx, a.byID(id))
	if err != nil {
		return model.Record{}, false, err //nolint:wrapcheck
	}

	rec := res.ToRecord()

	return rec, rec.ID != 0, nil
}

func (a *storeAdapter[T]) ListOverlapping(ctx context.Context, window engine.Interval, resourceIDs ...int64) ([]model.Record, error) {
	rows, err := a.store.GetAll(ctx, byCheckIn(), a.overlapping(window, resourceIDs))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRecords(rows), nil
}

func (a *storeAdapter[T]) ListOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, window engine.Interval, resourceIDs ...int64) ([]model.Record, error) {
	rows, err := a.store.GetAllTx(ctx, sqltx, byCheckIn(), a.overlapping(window, resourceIDs))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRecords(rows), nil
}

func (a *storeAdapter[T]) ListByBooking(ctx context.Context, bookingID int64) ([]model.Record, error) {
	rows, err := a.store.GetAll(ctx, byCheckIn(), a.byBooking(bookingID))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRecords(rows), nil
}

func (a *storeAdapter[T]) ListByBookings(ctx context.Context, bookingIDs ...int64) ([]model.Record, error) {
	if len(bookingIDs) == 0 {
		return []model.Record{}, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorIn, Value: bookingIDs, Table: a.table().Name},
		},
	}

	rows, err := a.store.GetAll(ctx, byCheckIn(), filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRecords(rows), nil
}

func statusFields(status engine.Status, username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)
	fields[model.FieldStatus] = status

	return fields
}

func (a *storeAdapter[T]) UpdateStatus(ctx context.Context, id int64, status engine.Status, username string) error {
	return a.store.Update(ctx, statusFields(status, username), a.byID(id)) //nolint:wrapcheck
}

func (a *storeAdapter[T]) UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id int64, status engine.Status, username string) error {
	return a.store.UpdateTx(ctx, sqltx, statusFields(status, username), a.byID(id)) //nolint:wrapcheck
}

// live selects the booking's rows that are booked or checked in.
func (a *storeAdapter[T]) live(bookingID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: a.table().Name},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []engine.Status{engine.StatusBooked, engine.StatusCheckedIn},
				Table:    a.table().Name,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// CancelByBookingTx cancels the booking's rows that have not been checked out.
func (a *storeAdapter[T]) CancelByBookingTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, username string) error {
	return a.store.UpdateTx(ctx, sqltx, statusFields(engine.StatusCancelled, username), a.live(bookingID)) //nolint:wrapcheck
}

// CheckOutByBookingTx checks out every row of the booking that is still booked or checked in.
func (a *storeAdapter[T]) CheckOutByBookingTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, username string) error {
	return a.store.UpdateTx(ctx, sqltx, statusFields(engine.StatusCheckedOut, username), a.live(bookingID)) //nolint:wrapcheck
}
