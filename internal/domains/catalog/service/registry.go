package service

import (
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/catalog/model"
	"hotelier/internal/domains/catalog/repository"
	"hotelier/shared/cache"
)

// Registry holds one service per catalog kind.
type Registry struct {
	Floors            Catalog[model.Floor]
	RoomTypes         Catalog[model.RoomType]
	HallTypes         Catalog[model.HallType]
	Amenities         Catalog[model.Amenity]
	Departments       Catalog[model.Department]
	Designations      Catalog[model.Designation]
	Employees         Catalog[model.Employee]
	ExpenseCategories Catalog[model.ExpenseCategory]
	PaidServices      Catalog[model.PaidService]
	MenuItems         Catalog[model.MenuItem]
}

func NewRegistry(db *postgres.Connection, cfg *config.Config, redisCache cache.RedisCache, otl otel.Otel) Registry {
	return Registry{
		Floors:            build[model.Floor](model.KindFloor, db, cfg, redisCache, otl),
		RoomTypes:         build[model.RoomType](model.KindRoomType, db, cfg, redisCache, otl),
		HallTypes:         build[model.HallType](model.KindHallType, db, cfg, redisCache, otl),
		Amenities:         build[model.Amenity](model.KindAmenity, db, cfg, redisCache, otl),
		Departments:       build[model.Department](model.KindDepartment, db, cfg, redisCache, otl),
		Designations:      build[model.Designation](model.KindDesignation, db, cfg, redisCache, otl),
		Employees:         build[model.Employee](model.KindEmployee, db, cfg, redisCache, otl),
		ExpenseCategories: build[model.ExpenseCategory](model.KindExpenseCategory, db, cfg, redisCache, otl),
		PaidServices:      build[model.PaidService](model.KindPaidService, db, cfg, redisCache, otl),
		MenuItems:         build[model.MenuItem](model.KindMenuItem, db, cfg, redisCache, otl),
	}
}

func build[T model.Entry[T]](kind model.Kind, db *postgres.Connection, cfg *config.Config, redisCache cache.RedisCache, otl otel.Otel) Catalog[T] {
	return New(kind, repository.New[T](kind, db, otl), cfg, redisCache, otl)
}
