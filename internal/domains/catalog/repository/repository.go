package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/catalog/model"
	gRepo "hotelier/shared/repository"
)

type Catalog[T any] interface {
	gRepo.Store[T]
}

type repositoryImpl[T any] struct {
	gRepo.Repository[T]
}

func New[T any](kind model.Kind, db *postgres.Connection, otel otel.Otel) Catalog[T] {
	return &repositoryImpl[T]{
		Repository: gRepo.NewRepository[T](kind.Table, kind.Table, model.FieldID, db, otel),
	}
}
