package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/pricing/model"
	gRepo "hotelier/shared/repository"
)

type PriceEntry interface {
	gRepo.Store[model.PriceEntry]
}

type repositoryImpl struct {
	gRepo.Repository[model.PriceEntry]
}

func New(db *postgres.Connection, otel otel.Otel) PriceEntry {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PriceEntry](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
