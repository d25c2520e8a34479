package dto

import (
	"hotelier/shared/constant"
	"hotelier/shared/model"
	"hotelier/shared/timezone"
)

// Metadata is the audit block embedded in every entity response, rendered in hotel local time.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(meta.ModifiedAt, constant.DateFormat)
	m.CreatedBy = meta.CreatedBy
	m.ModifiedBy = meta.ModifiedBy
}

// IDResponse is returned by create endpoints.
type IDResponse struct {
	ID int64 `json:"id"`
}

type URLResponse struct {
	URL string `json:"url"`
}
