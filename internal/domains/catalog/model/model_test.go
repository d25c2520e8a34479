package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/catalog/model"
	gModel "hotelier/shared/model"
)

func TestColumns(t *testing.T) {
	departmentID := int64(3)

	tests := []struct {
		name  string
		entry any
		want  map[string]any
	}{
		{
			name:  "zero values are kept",
			entry: model.Amenity{Base: model.Base{ID: 4}, Name: "Pool"},
			want:  map[string]any{"name": "Pool", "description": ""},
		},
		{
			name:  "nullable references",
			entry: model.Employee{FullName: "Sara", DepartmentID: &departmentID, IsActive: true},
			want: map[string]any{
				"full_name":      "Sara",
				"phone":          "",
				"email":          "",
				"department_id":  &departmentID,
				"designation_id": (*int64)(nil),
				"is_active":      true,
			},
		},
		{
			name:  "decimal prices",
			entry: model.PaidService{Name: "Spa", Price: decimal.NewFromInt(40)},
			want:  map[string]any{"name": "Spa", "price": decimal.NewFromInt(40), "description": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Columns(tt.entry))
		})
	}
}

func TestPrepared(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	meta := gModel.NewMetadata("frontdesk", now)

	floor := model.Floor{Base: model.Base{ID: 12}, Name: "Roof", Number: 9}.Prepared(meta)

	assert.Zero(t, floor.EntryID())
	assert.Equal(t, "Roof", floor.Name)
	assert.Equal(t, 9, floor.Number)
	assert.Equal(t, meta, floor.Metadata)
}

func TestKinds(t *testing.T) {
	paths := make(map[string]bool, len(model.Kinds))

	for _, kind := range model.Kinds {
		assert.NotEmpty(t, kind.Table)
		assert.NotEmpty(t, kind.Search)
		assert.False(t, paths[kind.Path], "duplicate path %s", kind.Path)

		paths[kind.Path] = true
	}
}
