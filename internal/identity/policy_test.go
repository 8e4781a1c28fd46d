package identity

import (
	"testing"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// TestAllowed は役割と要求能力の組み合わせごとの判定を検証する。
func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		required []model.Role
		want     bool
	}{
		{"no requirement allows anyone", model.RoleStudent, nil, true},
		{"student satisfies student", model.RoleStudent, []model.Role{model.RoleStudent}, true},
		{"student does not satisfy teacher", model.RoleStudent, []model.Role{model.RoleTeacher}, false},
		{"teacher satisfies teacher", model.RoleTeacher, []model.Role{model.RoleTeacher}, true},
		{"teacher does not satisfy student", model.RoleTeacher, []model.Role{model.RoleStudent}, false},
		{"both satisfies student", model.RoleBoth, []model.Role{model.RoleStudent}, true},
		{"both satisfies teacher", model.RoleBoth, []model.Role{model.RoleTeacher}, true},
		{"any of several requirements", model.RoleStudent, []model.Role{model.RoleTeacher, model.RoleStudent}, true},
		{"unknown role satisfies nothing", model.Role("admin"), []model.Role{model.RoleTeacher}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.required...); got != tt.want {
				t.Errorf("Allowed(%q, %v) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}
