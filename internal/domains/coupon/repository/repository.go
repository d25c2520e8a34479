package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/coupon/model"
	gRepo "hotelier/shared/repository"
)

type Coupon interface {
	gRepo.Store[model.Coupon]
}

type repositoryImpl struct {
	gRepo.Repository[model.Coupon]
}

func New(db *postgres.Connection, otel otel.Otel) Coupon {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Coupon](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
