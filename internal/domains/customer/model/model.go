package model

import (
	"bizdesk/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldIsActive = "is_active"
)

type Customer struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Email    *string `db:"email"`
	Phone    *string `db:"phone"`
	Address  *string `db:"address"`
	IsActive bool    `db:"is_active"`
	model.Metadata
}
