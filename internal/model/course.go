package model

import "time"

// Course は開講コースを表す。
// コースの受講名簿（StudentIDs）とUser.CoursesStudyingは同じ多対多関係の
// 2つのビューであり、更新後は常に相互に整合していなければならない。
type Course struct {
	ID    string
	Name  string
	Price float64

	// TeacherID は担当教師のユーザーID。教師削除時は空になる（コースは残る）。
	TeacherID string

	// StudentIDs は受講中学生のID一覧（名簿）。
	StudentIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
