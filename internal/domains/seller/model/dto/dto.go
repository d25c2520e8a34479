package dto

import (
	"hotelier/internal/domains/seller/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"
)

// SubmitApplicationRequest is the public intake form. Status is not accepted from the caller.
type SubmitApplicationRequest struct {
	FullName     string `json:"full_name"     validate:"required,max=120"`
	Email        string `json:"email"         validate:"required,email,max=254"`
	Phone        string `json:"phone"         validate:"required,max=32"`
	BusinessName string `json:"business_name" validate:"omitempty,max=160"`
	Message      string `json:"message"       validate:"omitempty,max=2000"`
}

func (r *SubmitApplicationRequest) ToModel(username string) model.SellerApplication {
	return model.SellerApplication{
		FullName:     strings.TrimSpace(r.FullName),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:        strings.TrimSpace(r.Phone),
		BusinessName: strings.TrimSpace(r.BusinessName),
		Message:      r.Message,
		Status:       model.StatusPending,
		Metadata:     gModel.NewMetadata(username, timezone.Now()),
	}
}

type SubmitApplicationResponse struct {
	ID     int64        `json:"id"`
	Status model.Status `json:"status"`
}

type ReviewApplicationRequest struct {
	Decision model.Decision `json:"decision" validate:"required,oneof=approve reject"`
	Note     string         `json:"note"     validate:"omitempty,max=1000"`
}

func (r *ReviewApplicationRequest) ToFields(username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)

	fields[model.FieldStatus] = r.Decision.Outcome()
	fields[model.FieldReviewedBy] = username
	fields[model.FieldReviewedAt] = timezone.Now()

	if r.Note != "" {
		fields[model.FieldReviewNote] = r.Note
	}

	return fields
}

type ApplicationResponse struct {
	ID           int64        `json:"id"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	BusinessName string       `json:"business_name"`
	Message      string       `json:"message"`
	Status       model.Status `json:"status"`
	ReviewNote   *string      `json:"review_note"`
	ReviewedBy   *string      `json:"reviewed_by"`
	ReviewedAt   *string      `json:"reviewed_at"`
	gDto.Metadata
}

func (r *ApplicationResponse) FromModel(app model.SellerApplication) {
	r.ID = app.ID
	r.FullName = app.FullName
	r.Email = app.Email
	r.Phone = app.Phone
	r.BusinessName = app.BusinessName
	r.Message = app.Message
	r.Status = app.Status
	r.ReviewNote = app.ReviewNote
	r.ReviewedBy = app.ReviewedBy
	r.Metadata.FromModel(app.Metadata)

	if app.ReviewedAt != nil {
		at := timezone.Format(*app.ReviewedAt, constant.DateFormat)
		r.ReviewedAt = &at
	}
}

type GetApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetApplicationsResponse) FromModels(models []model.SellerApplication, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Applications = make([]ApplicationResponse, len(models))
	for i, mod := range models {
		r.Applications[i].FromModel(mod)
	}
}

func StatusFilter(status string) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName,
		})
	}

	return filter
}
