package model

import (
	"bizdesk/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldDurationMinutes = "duration_minutes"
	FieldPrice           = "price"
	FieldIsActive        = "is_active"
)

type Service struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
	Price           float64 `db:"price"`
	IsActive        bool    `db:"is_active"`
	model.Metadata
}
