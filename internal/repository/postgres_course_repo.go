package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// PostgresCourseRepo はPostgreSQLを使用したコースリポジトリ。
type PostgresCourseRepo struct {
	db *sql.DB
}

// NewPostgresCourseRepo はPostgresCourseRepoを生成する。
func NewPostgresCourseRepo(db *sql.DB) *PostgresCourseRepo {
	return &PostgresCourseRepo{db: db}
}

// scanCourse は1行分のコースを読み取る。teacher_idのNULLは空文字列に写す。
func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
	course := &model.Course{}
	var teacherID sql.NullString
	err := row.Scan(&course.ID, &course.Name, &course.Price, &teacherID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	course.TeacherID = teacherID.String
	return course, nil
}

// nullableTeacherID は空のTeacherIDをNULLとして書き込むための変換。
func nullableTeacherID(teacherID string) sql.NullString {
	return sql.NullString{String: teacherID, Valid: teacherID != ""}
}

// FindByID は指定IDのコースを名簿付きで取得する。見つからない場合はnilを返す。
// 整形式でないIDも見つからない扱いにする。
func (r *PostgresCourseRepo) FindByID(ctx context.Context, id string) (*model.Course, error) {
	if !isUUID(id) {
		return nil, nil
	}
	course, err := scanCourse(r.db.QueryRowContext(ctx,
		`SELECT id, name, price, teacher_id, created_at, updated_at FROM courses WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("コースの取得に失敗しました: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM course_students WHERE course_id = $1 ORDER BY user_id ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("名簿の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			return nil, fmt.Errorf("名簿行の読み取りに失敗しました: %w", err)
		}
		course.StudentIDs = append(course.StudentIDs, studentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("名簿の走査に失敗しました: %w", err)
	}

	return course, nil
}

// FindByIDs は指定ID集合に一致するコースを1回のクエリで取得する。
// 存在しないIDと整形式でないIDは結果から単に欠落する。
func (r *PostgresCourseRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Course, error) {
	ids = filterUUIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, teacher_id, created_at, updated_at
		 FROM courses WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("コースの一括取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("コース行の読み取りに失敗しました: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コース一覧の走査に失敗しました: %w", err)
	}
	return courses, nil
}

// List は全コースを作成日時順で返す。
func (r *PostgresCourseRepo) List(ctx context.Context) ([]*model.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, teacher_id, created_at, updated_at
		 FROM courses ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("コース一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("コース行の読み取りに失敗しました: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コース一覧の走査に失敗しました: %w", err)
	}
	return courses, nil
}

// Create はコースを作成する。
func (r *PostgresCourseRepo) Create(ctx context.Context, course *model.Course) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, name, price, teacher_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		course.ID, course.Name, course.Price, nullableTeacherID(course.TeacherID),
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("コースの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はコース情報を更新する。名簿は変更しない。
func (r *PostgresCourseRepo) Update(ctx context.Context, course *model.Course) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE courses SET name = $2, price = $3, teacher_id = $4, updated_at = NOW() WHERE id = $1`,
		course.ID, course.Name, course.Price, nullableTeacherID(course.TeacherID),
	)
	if err != nil {
		return fmt.Errorf("コースの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("コースが見つかりません: %s", course.ID)
	}
	return nil
}

// DeleteByID は指定IDのコースを削除する。受講関係はCASCADE削除される。
func (r *PostgresCourseRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM courses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("コースの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("コースが見つかりません: %s", id)
	}
	return nil
}

// compile-time interface check
var _ CourseRepository = (*PostgresCourseRepo)(nil)
