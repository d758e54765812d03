package shared_test

import (
	"strings"
	"testing"
	"time"

	"bizdesk/shared"
	"bizdesk/shared/constant"
	"bizdesk/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "maybe",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}

				return
			}

			if got == nil || *got != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 5, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Notes      string    `db:"notes"`
		EmployeeID string    `db:"employee_id"`
		StartTime  time.Time `db:"start_time"`
		Ignored    string
	}

	req := updateRequest{
		Notes:   "bring paperwork",
		Ignored: "should not appear",
	}

	fields := shared.TransformFields(req, "user-1")

	if fields["notes"] != "bring paperwork" {
		t.Errorf("expected notes to be set, got %v", fields["notes"])
	}

	if _, ok := fields["employee_id"]; ok {
		t.Error("zero-valued field should be skipped")
	}

	if _, ok := fields["Ignored"]; ok {
		t.Error("field without db tag should be skipped")
	}

	if fields[constant.FieldModifiedBy] != "user-1" {
		t.Errorf("expected modified_by to be user-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be stamped")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("appt-1", "id", "appointments")

	where, args := group.GetWhereClause()
	if where != "(appointments.id = :id)" {
		t.Errorf("unexpected where clause %q", where)
	}

	if args["id"] != "appt-1" {
		t.Errorf("expected id arg, got %v", args["id"])
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("appointment", "get", "appt-1")
	if key != "appointment:get:appt-1" {
		t.Errorf("unexpected key %q", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "SCHEDULED", Operator: dto.FilterOperatorEq},
		},
	}

	first := shared.BuildCacheKeyWithQuery("appointment:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("appointment:gets", params, filter)

	if first != second {
		t.Errorf("expected stable keys, got %q and %q", first, second)
	}

	if !strings.HasPrefix(first, "appointment:gets:") {
		t.Errorf("expected prefix, got %q", first)
	}

	other := shared.BuildCacheKeyWithQuery("appointment:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)
	if first == other {
		t.Error("expected different keys for different params")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
