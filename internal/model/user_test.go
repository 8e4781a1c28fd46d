package model

import "testing"

// TestRole_Valid は役割の妥当性判定を検証する。
func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleStudent, true},
		{RoleTeacher, true},
		{RoleBoth, true},
		{Role(""), false},
		{Role("admin"), false},
		{Role("Student"), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

// TestRole_Capabilities は役割ごとの受講・担当能力を検証する。
func TestRole_Capabilities(t *testing.T) {
	tests := []struct {
		role     Role
		canStudy bool
		canTeach bool
	}{
		{RoleStudent, true, false},
		{RoleTeacher, false, true},
		{RoleBoth, true, true},
		{Role("admin"), false, false},
	}

	for _, tt := range tests {
		if got := tt.role.CanStudy(); got != tt.canStudy {
			t.Errorf("Role(%q).CanStudy() = %v, want %v", tt.role, got, tt.canStudy)
		}
		if got := tt.role.CanTeach(); got != tt.canTeach {
			t.Errorf("Role(%q).CanTeach() = %v, want %v", tt.role, got, tt.canTeach)
		}
	}
}

// TestUser_StudyingCourseIDs は受講コースID一覧の導出を検証する。
func TestUser_StudyingCourseIDs(t *testing.T) {
	user := &User{
		CoursesStudying: []*Course{
			{ID: "c1"},
			{ID: "c2"},
		},
		CoursesTeaching: []*Course{
			{ID: "c3"},
		},
	}

	ids := user.StudyingCourseIDs()
	if len(ids) != 2 || ids[0] != "c1" || ids[1] != "c2" {
		t.Errorf("StudyingCourseIDs() = %v, want [c1 c2]", ids)
	}

	empty := &User{}
	if got := empty.StudyingCourseIDs(); len(got) != 0 {
		t.Errorf("StudyingCourseIDs() on empty user = %v, want empty", got)
	}
}
