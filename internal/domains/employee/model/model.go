package model

import (
	"bizdesk/shared/model"
)

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPosition = "position"
	FieldIsActive = "is_active"
)

type Employee struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Email    *string `db:"email"`
	Phone    *string `db:"phone"`
	Position *string `db:"position"`
	IsActive bool    `db:"is_active"`
	model.Metadata
}
