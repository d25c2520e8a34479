package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/resource/model"
	gRepo "hotelier/shared/repository"
)

type Room interface {
	gRepo.Store[model.Room]
}

type Hall interface {
	gRepo.Store[model.Hall]
}

type roomRepositoryImpl struct {
	gRepo.Repository[model.Room]
}

type hallRepositoryImpl struct {
	gRepo.Repository[model.Hall]
}

func NewRoom(db *postgres.Connection, otel otel.Otel) Room {
	return &roomRepositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.RoomEntityName, model.RoomTableName, model.FieldID, db, otel),
	}
}

func NewHall(db *postgres.Connection, otel otel.Otel) Hall {
	return &hallRepositoryImpl{
		Repository: gRepo.NewRepository[model.Hall](model.HallEntityName, model.HallTableName, model.FieldID, db, otel),
	}
}
