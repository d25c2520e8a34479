package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/settings/model"
	gRepo "hotelier/shared/repository"
)

type Settings interface {
	gRepo.Store[model.Settings]
}

type repositoryImpl struct {
	gRepo.Repository[model.Settings]
}

func New(db *postgres.Connection, otel otel.Otel) Settings {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Settings](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
