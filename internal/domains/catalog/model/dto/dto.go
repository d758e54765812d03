package dto

import (
	"github.com/google/uuid"

	"bizdesk/internal/domains/catalog/model"
	"bizdesk/shared"
	gDto "bizdesk/shared/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

type CreateServiceRequest struct {
	Name            string  `json:"name"             validate:"required,max=100"`
	Description     *string `json:"description"      validate:"omitempty,max=500"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Price           float64 `json:"price"            validate:"required,gt=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Description:     c.Description,
		DurationMinutes: c.DurationMinutes,
		Price:           c.Price,
		IsActive:        true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name            string   `db:"name"             json:"name"             validate:"omitempty,max=100"`
	Description     *string  `db:"description"      json:"description"      validate:"omitempty,max=500"`
	DurationMinutes *int     `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	Price           *float64 `db:"price"            json:"price"            validate:"omitempty,gt=0"`
	IsActive        *bool    `db:"is_active"        json:"is_active"`
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(mod model.Service) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.DurationMinutes = mod.DurationMinutes
	r.Price = mod.Price
	r.IsActive = mod.IsActive
	r.Metadata.FromModel(mod.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
