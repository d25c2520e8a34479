package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/guest/model"
	gRepo "hotelier/shared/repository"
)

type Guest interface {
	gRepo.Store[model.Guest]
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
