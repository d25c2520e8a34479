package repository

import (
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/occupancy/model"
	gRepo "hotelier/shared/repository"
)

type BookedRoom interface {
	gRepo.Store[model.BookedRoom]
}

type BookedHall interface {
	gRepo.Store[model.BookedHall]
}

type bookedRoomRepositoryImpl struct {
	gRepo.Repository[model.BookedRoom]
}

type bookedHallRepositoryImpl struct {
	gRepo.Repository[model.BookedHall]
}

func NewBookedRoom(db *postgres.Connection, otel otel.Otel) BookedRoom {
	return &bookedRoomRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookedRoom](model.BookedRoomEntityName, model.BookedRoomTableName, model.FieldID, db, otel),
	}
}

func NewBookedHall(db *postgres.Connection, otel otel.Otel) BookedHall {
	return &bookedHallRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookedHall](model.BookedHallEntityName, model.BookedHallTableName, model.FieldID, db, otel),
	}
}
