package dto

import (
	"github.com/google/uuid"

	"bizdesk/internal/domains/customer/model"
	"bizdesk/shared"
	gDto "bizdesk/shared/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,max=100"`
	Email   *string `json:"email"   validate:"omitempty,email,max=100"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=200"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name     string  `db:"name"      json:"name"    validate:"omitempty,max=100"`
	Email    *string `db:"email"     json:"email"   validate:"omitempty,email,max=100"`
	Phone    *string `db:"phone"     json:"phone"   validate:"omitempty,max=20"`
	Address  *string `db:"address"   json:"address" validate:"omitempty,max=200"`
	IsActive *bool   `db:"is_active" json:"is_active"`
}

type CustomerResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive bool    `json:"is_active"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Address = mod.Address
	r.IsActive = mod.IsActive
	r.Metadata.FromModel(mod.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
