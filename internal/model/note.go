package model

import "time"

// Note は学生のコースにおける成績を表す。
type Note struct {
	ID        string
	Value     float64
	StudentID string
	CourseID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
