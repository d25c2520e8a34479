package dto

import (
	"hotelier/internal/domains/catalog/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
)

type Page[T any] struct {
	Entries   []T `json:"entries"`
	TotalPage int `json:"total_page"`
	TotalData int `json:"total_data"`
}

func (p *Page[T]) FromEntries(entries []T, totalData, limit int) {
	p.TotalData = totalData
	p.TotalPage = shared.CalculateTotalPage(totalData, limit)

	p.Entries = entries
	if p.Entries == nil {
		p.Entries = []T{}
	}
}

// Search matches the kind's display column case-insensitively. An empty term matches everything.
func Search(kind model.Kind, term string) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if term != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: kind.Search, Operator: gDto.FilterOperatorLike, Value: term, Table: kind.Table,
		})
	}

	return filter
}
