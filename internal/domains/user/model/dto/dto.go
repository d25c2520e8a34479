package dto

import (
	"hotelier/internal/domains/user/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Level     string  `json:"level"`
	FullName  *string `json:"full_name,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Level = user.Level
	r.FullName = user.FullName
	r.Active = user.Active

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}

// UpdateUserRequest is the admin edit of an operator account.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty" db:"full_name" validate:"omitempty,min=2,max=100"`
	Level    *string `json:"level,omitempty"     db:"level"     validate:"omitempty,oneof=admin operator"`
	Active   *bool   `json:"active,omitempty"    db:"active"`
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return r.FullName == nil && r.Level == nil && r.Active == nil
}

func (r *UpdateUserRequest) ToFields(username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)

	if r.FullName != nil {
		fields[model.FieldFullName] = *r.FullName
	}

	if r.Level != nil {
		fields[model.FieldLevel] = *r.Level
	}

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	return fields
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// EmailFilter matches the account with the given (lowercased) email.
func EmailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    model.TableName,
			},
		},
	}
}

// UserFilter is the list query accepted by GET /v1/users.
type UserFilter struct {
	Level  string
	Active *bool
}

func (f UserFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Level != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldLevel, Operator: gDto.FilterOperatorEq, Value: f.Level, Table: model.TableName,
		})
	}

	if f.Active != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *f.Active, Table: model.TableName,
		})
	}

	return group
}
