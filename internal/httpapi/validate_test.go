package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSchemasCompile(t *testing.T) {
	v, err := newValidator()
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}
	for _, name := range []string{"register", "login", "user_update", "category", "task_create", "task_update"} {
		if _, ok := v.schemas[name]; !ok {
			t.Errorf("schema %q not loaded", name)
		}
	}
}

func TestDecodeTaskCreate(t *testing.T) {
	v, err := newValidator()
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}

	tests := []struct {
		name    string
		body    string
		problem string
	}{
		{"valid", `{"title":"Ship","priority":2,"dueDate":"2025-06-01T10:00:00Z","categoryId":null}`, ""},
		{"missing title", `{"priority":2}`, "title"},
		{"empty title", `{"title":""}`, "title"},
		{"priority too high", `{"title":"x","priority":4}`, "priority"},
		{"fractional priority", `{"title":"x","priority":1.5}`, "priority"},
		{"bad due date", `{"title":"x","dueDate":"tomorrow"}`, "dueDate"},
		{"zero category", `{"title":"x","categoryId":0}`, "categoryId"},
		{"not an object", `[1,2]`, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/tasks", strings.NewReader(tt.body))
			var in CreateTaskIn
			problems := v.decode(req, "task_create", &in)

			if tt.problem == "" {
				if problems != nil {
					t.Fatalf("unexpected problems: %v", problems)
				}
				if in.Title != "Ship" || in.Priority == nil || *in.Priority != 2 || in.DueDate == nil || in.CategoryID != nil {
					t.Fatalf("unexpected payload: %+v", in)
				}
				return
			}
			if !strings.Contains(strings.Join(problems, "\n"), tt.problem) {
				t.Fatalf("expected a problem mentioning %q, got %v", tt.problem, problems)
			}
		})
	}
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	v, err := newValidator()
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}
	body := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	var in CreateTaskIn
	problems := v.decode(httptest.NewRequest("POST", "/api/tasks", strings.NewReader(body)), "task_create", &in)
	if len(problems) != 1 || problems[0] != "request body too large" {
		t.Fatalf("unexpected problems: %v", problems)
	}
}
