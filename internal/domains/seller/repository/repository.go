package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/seller/model"
	gRepo "hotelier/shared/repository"
)

type SellerApplication interface {
	gRepo.Store[model.SellerApplication]
}

type repositoryImpl struct {
	gRepo.Repository[model.SellerApplication]
}

func New(db *postgres.Connection, otel otel.Otel) SellerApplication {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SellerApplication](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
