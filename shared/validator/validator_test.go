package validator_test

import (
	"strings"
	"testing"

	"bizdesk/shared/failure"
	"bizdesk/shared/validator"
)

type createRequest struct {
	ServiceID  string `json:"service_id" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	Rating     *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid body",
			body:    `{"service_id":"svc-1","employee_id":"emp-1"}`,
			wantErr: false,
		},
		{
			name:    "missing required field",
			body:    `{"service_id":"svc-1"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"service_id":`,
			wantErr: true,
		},
		{
			name:    "rating out of range",
			body:    `{"service_id":"svc-1","employee_id":"emp-1","rating":9}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if tt.wantErr && err != nil {
				if failure.GetCode(err) != 400 {
					t.Errorf("expected bad request code, got %d", failure.GetCode(err))
				}
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("DAILY", "oneof=DAILY WEEKLY MONTHLY"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("YEARLY", "oneof=DAILY WEEKLY MONTHLY"); err == nil {
		t.Error("expected an error for invalid frequency")
	}
}
