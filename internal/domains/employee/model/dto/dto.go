package dto

import (
	"github.com/google/uuid"

	"bizdesk/internal/domains/employee/model"
	"bizdesk/shared"
	gDto "bizdesk/shared/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

type CreateEmployeeRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email,max=100"`
	Phone    *string `json:"phone"    validate:"omitempty,max=20"`
	Position *string `json:"position" validate:"omitempty,max=100"`
}

func (c *CreateEmployeeRequest) ToModel(user string) model.Employee {
	return model.Employee{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Position: c.Position,
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEmployeeRequest struct {
	Name     string  `db:"name"      json:"name"     validate:"omitempty,max=100"`
	Email    *string `db:"email"     json:"email"    validate:"omitempty,email,max=100"`
	Phone    *string `db:"phone"     json:"phone"    validate:"omitempty,max=20"`
	Position *string `db:"position"  json:"position" validate:"omitempty,max=100"`
	IsActive *bool   `db:"is_active" json:"is_active"`
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	IsActive bool    `json:"is_active"`
	gDto.Metadata
}

func (r *EmployeeResponse) FromModel(mod model.Employee) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Position = mod.Position
	r.IsActive = mod.IsActive
	r.Metadata.FromModel(mod.Metadata)
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}
