package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/archive/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Archive interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.ArchivedBooking) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

// Entry reads archived bookings joined with booking and guest columns.
type Entry interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Entry, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type archiveImpl struct {
	gRepo.Repository[model.ArchivedBooking]
}

type entryImpl struct {
	gRepo.Repository[model.Entry]
}

func New(db *postgres.Connection, otel otel.Otel) Archive {
	return &archiveImpl{
		Repository: gRepo.NewRepository[model.ArchivedBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func NewEntry(db *postgres.Connection, otel otel.Otel) Entry {
	return &entryImpl{
		Repository: gRepo.NewRepository[model.Entry](model.EntryEntityName, model.TableName, model.FieldID, db, otel),
	}
}
