// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの役割を表す。
type Role string

const (
	// RoleStudent は受講のみ可能な役割。
	RoleStudent Role = "student"
	// RoleTeacher は教えることのみ可能な役割。
	RoleTeacher Role = "teacher"
	// RoleBoth は受講と教えることの両方が可能な役割。
	RoleBoth Role = "both"
)

// Valid は既知の役割かどうかを返す。
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleBoth:
		return true
	}
	return false
}

// CanStudy はこの役割がコースを受講できるかを返す。
func (r Role) CanStudy() bool {
	return r == RoleStudent || r == RoleBoth
}

// CanTeach はこの役割がコースを担当できるかを返す。
func (r Role) CanTeach() bool {
	return r == RoleTeacher || r == RoleBoth
}

// User はサービス利用ユーザー（学生・教師）を表す。
// PasswordHashはbcryptハッシュのみを保持し、平文は一切保持しない。
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Age          int
	UserName     string
	PasswordHash string
	Role         Role

	// CoursesStudying は受講中コース。FindByIDWithEnrollmentsでのみ読み込まれる。
	CoursesStudying []*Course
	// CoursesTeaching は担当コース。teacher_idがこのユーザーを指すコースのみ含む。
	CoursesTeaching []*Course

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudyingCourseIDs は受講中コースのID一覧を返す。
func (u *User) StudyingCourseIDs() []string {
	ids := make([]string, len(u.CoursesStudying))
	for i, c := range u.CoursesStudying {
		ids[i] = c.ID
	}
	return ids
}
