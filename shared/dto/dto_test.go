package dto_test

import (
	"net/http/httptest"
	"testing"

	"bizdesk/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "employee_id",
				Value:    "emp-1",
				Operator: dto.FilterOperatorEq,
				Table:    "appointments",
			},
			wantWhere: "appointments.employee_id = :employee_id",
			wantArgs:  map[string]any{"employee_id": "emp-1"},
		},
		{
			name: "less with arg name",
			filter: dto.Filter{
				ArgName:  "window_end",
				Field:    "start_time",
				Value:    "2024-01-01T10:00:00Z",
				Operator: dto.FilterOperatorLess,
				Table:    "appointments",
			},
			wantWhere: "appointments.start_time < :window_end",
			wantArgs:  map[string]any{"window_end": "2024-01-01T10:00:00Z"},
		},
		{
			name: "greater_eq",
			filter: dto.Filter{
				Field:    "start_time",
				Value:    "2024-01-01T00:00:00Z",
				Operator: dto.FilterOperatorGreaterEq,
			},
			wantWhere: "start_time >= :start_time",
			wantArgs:  map[string]any{"start_time": "2024-01-01T00:00:00Z"},
		},
		{
			name: "in with slice",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"SCHEDULED", "CONFIRMED"},
				Operator: dto.FilterOperatorIn,
			},
			wantWhere: "status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "SCHEDULED", "status_1": "CONFIRMED"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Value:    "x",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for k, v := range tt.wantArgs {
				if args[k] != v {
					t.Errorf("expected arg %s=%v, got %v", k, v, args[k])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "employee_id", Value: "emp-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "SCHEDULED", Operator: dto.FilterOperatorEq, ArgName: "status_a"},
					dto.Filter{Field: "status", Value: "CONFIRMED", Operator: dto.FilterOperatorEq, ArgName: "status_b"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(employee_id = :employee_id AND (status = :status_a OR status = :status_b))"
	if where != expected {
		t.Errorf("expected where %q, got %q", expected, where)
	}

	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()
	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %d", len(args))
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		withDefault bool
		want        dto.QueryParams
	}{
		{
			name:        "full query",
			url:         "/v1/appointments?page=2&limit=25&sort_by=start_time&sort_dir=asc",
			withDefault: true,
			want:        dto.QueryParams{Page: 2, Limit: 25, SortBy: "start_time", SortDir: "ASC"},
		},
		{
			name:        "defaults applied",
			url:         "/v1/appointments",
			withDefault: true,
			want:        dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:        "no defaults",
			url:         "/v1/appointments?sort_dir=desc",
			withDefault: false,
			want:        dto.QueryParams{SortDir: "DESC"},
		},
		{
			name:        "invalid values ignored",
			url:         "/v1/appointments?page=-1&limit=abc&sort_dir=sideways",
			withDefault: true,
			want:        dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			q := dto.QueryParams{}
			q.FromRequest(r, tt.withDefault)

			if q != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, q)
			}
		})
	}
}
